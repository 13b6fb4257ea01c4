package api

import (
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

var cacheStats = cache.New(5*time.Minute, 10*time.Minute)

type Stats struct {
	TotalTransfers int64 `json:"total_transfers"`
	TotalDownloads int64 `json:"total_downloads"`
	TotalListings  int64 `json:"total_listings"`
	TotalFailures  int64 `json:"total_failures"`
}

func ConfigureStatsRouter(e *echo.Group, node *core.GatewayNode) {
	e.GET("/stats", func(c echo.Context) error {

		stats, found := cacheStats.Get("stats")
		if found {
			return c.JSON(200, stats)
		}

		var s Stats
		if node.DB == nil {
			return c.JSON(200, s)
		}

		err := node.DB.Model(&core.TransferLog{}).Count(&s.TotalTransfers).Error
		if err != nil {
			return c.JSON(500, err)
		}

		err = node.DB.Model(&core.TransferLog{}).Where("operation = ?", utils.OP_DOWNLOAD).Count(&s.TotalDownloads).Error
		if err != nil {
			return c.JSON(500, err)
		}

		err = node.DB.Model(&core.TransferLog{}).Where("operation in ?", []string{utils.OP_LIST_FILES, utils.OP_LIST_FOLDERS}).Count(&s.TotalListings).Error
		if err != nil {
			return c.JSON(500, err)
		}

		err = node.DB.Model(&core.TransferLog{}).Where("status = ?", utils.STATUS_ERROR).Count(&s.TotalFailures).Error
		if err != nil {
			return c.JSON(500, err)
		}

		cacheStats.Set("stats", &s, cache.DefaultExpiration)
		return c.JSON(200, s)
	})
}
