package api

import (
	"net/http"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/labstack/echo/v4"
)

type GatewayInfoResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
	Endpoints []string  `json:"endpoints"`
}

type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// ConfigureHealthCheckRouter registers the service info and liveness routes,
// both without auth.
func ConfigureHealthCheckRouter(healthCheckApiGroup *echo.Group, node *core.GatewayNode) {

	healthCheckApiGroup.GET("/", handleGatewayInfo(node))
	healthCheckApiGroup.GET("/health", handleHealthCheck(node))
}

func handleGatewayInfo(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, GatewayInfoResponse{
			Status:    "ok",
			Message:   node.Config.Node.Description,
			Version:   utils.Version,
			Uptime:    node.Uptime().Seconds(),
			Timestamp: time.Now().UTC(),
			Endpoints: endpointList,
		})
	}
}

func handleHealthCheck(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthCheckResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			Uptime:    node.Uptime().Seconds(),
		})
	}
}
