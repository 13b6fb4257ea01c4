package api

import (
	"net/http"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ListFoldersRequest struct {
	core.ConnectionParams
	BasePath string `json:"basePath,omitempty"`
}

type FolderEntry struct {
	Name       string `json:"name"`
	ModifyTime int64  `json:"modifyTime"`
	Size       int64  `json:"size"`
}

type ListFoldersResponse struct {
	Success bool          `json:"success"`
	Folders []FolderEntry `json:"folders"`
	Count   int           `json:"count"`
	Path    string        `json:"path"`
}

func ConfigureFoldersRouter(e *echo.Group, node *core.GatewayNode) {
	e.POST("/list-folders", handleListFolders(node))
}

func handleListFolders(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ListFoldersRequest
		if err := c.Bind(&req); err != nil {
			return missingParameter(c, "invalid request body")
		}

		if req.Host == "" || req.Username == "" || req.Password == "" {
			return missingParameter(c, "host, username and password are required")
		}

		basePath := req.BasePath
		if basePath == "" {
			basePath = "/"
		}

		requestID := uuid.New().String()
		started := time.Now()

		session, err := node.Dialer.Connect(req.ConnectionParams, 0)
		if err != nil {
			recordFolderListing(node, requestID, req, basePath, started, err)
			return upstreamError(c, err)
		}
		defer closeSession(session)

		entries, err := session.List(basePath)
		if err != nil {
			recordFolderListing(node, requestID, req, basePath, started, err)
			return upstreamError(c, err)
		}

		// symlinks and other special entries fall through the filter
		folders := make([]FolderEntry, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() || entry.Name == "." || entry.Name == ".." {
				continue
			}
			folders = append(folders, FolderEntry{
				Name:       entry.Name,
				ModifyTime: entry.ModTime.UnixMilli(),
				Size:       entry.Size,
			})
		}

		recordFolderListing(node, requestID, req, basePath, started, nil)

		return c.JSON(http.StatusOK, ListFoldersResponse{
			Success: true,
			Folders: folders,
			Count:   len(folders),
			Path:    basePath,
		})
	}
}

func recordFolderListing(node *core.GatewayNode, requestID string, req ListFoldersRequest, basePath string, started time.Time, opErr error) {
	entry := core.TransferLog{
		RequestID:  requestID,
		Operation:  utils.OP_LIST_FOLDERS,
		Host:       req.Host,
		Port:       req.Port,
		RemotePath: basePath,
		Status:     utils.STATUS_SUCCESS,
		DurationMs: time.Since(started).Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if opErr != nil {
		entry.Status = utils.STATUS_ERROR
		entry.Message = opErr.Error()
	}
	recordTransfer(node, entry)
}
