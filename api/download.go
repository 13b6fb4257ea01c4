package api

import (
	"encoding/base64"
	"net/http"
	"path"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DownloadRequest struct {
	core.ConnectionParams
	RemotePath string `json:"remotePath"`
	NeedsUnzip bool   `json:"needsUnzip,omitempty"`
	// ZipPassword is accepted for contract compatibility but encrypted
	// archives are not supported; extraction fails with the zip reader's
	// own error.
	ZipPassword string `json:"zipPassword,omitempty"`
}

type DownloadResponse struct {
	Success      bool   `json:"success"`
	Data         string `json:"data"`
	Filename     string `json:"filename"`
	Size         int    `json:"size"`
	OriginalPath string `json:"originalPath"`
	WasUnzipped  bool   `json:"wasUnzipped"`
	ContentType  string `json:"contentType"`
}

func ConfigureDownloadRouter(e *echo.Group, node *core.GatewayNode) {
	e.POST("/download", handleDownload(node))
}

// handleDownload buffers the whole remote file, optionally swaps it for the
// first entry of a zip archive, and returns it base64-encoded.
func handleDownload(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req DownloadRequest
		if err := c.Bind(&req); err != nil {
			return missingParameter(c, "invalid request body")
		}

		if req.Host == "" || req.Username == "" || req.Password == "" || req.RemotePath == "" {
			return missingParameter(c, "host, username, password and remotePath are required")
		}

		requestID := uuid.New().String()
		started := time.Now()
		log.Infof("[%s] downloading %s from %s", requestID, req.RemotePath, req.Addr())

		session, err := node.Dialer.Connect(req.ConnectionParams, 0)
		if err != nil {
			recordDownload(node, requestID, req, started, err)
			return upstreamError(c, err)
		}
		defer closeSession(session)

		data, err := session.Get(req.RemotePath)
		if err != nil {
			recordDownload(node, requestID, req, started, err)
			return upstreamError(c, err)
		}

		filename := path.Base(req.RemotePath)
		wasUnzipped := false

		if req.NeedsUnzip && utils.IsZipName(filename) {
			entry, err := utils.ExtractFirstEntry(data)
			if err != nil {
				// no fallback to the raw zip once extraction was asked for
				recordDownload(node, requestID, req, started, err)
				return archiveError(c, err)
			}
			// an empty archive keeps the original payload
			if entry != nil {
				data = entry.Content
				filename = entry.Name
				wasUnzipped = true
			}
		}

		recordDownload(node, requestID, req, started, nil)

		return c.JSON(http.StatusOK, DownloadResponse{
			Success:      true,
			Data:         base64.StdEncoding.EncodeToString(data),
			Filename:     filename,
			Size:         len(data),
			OriginalPath: req.RemotePath,
			WasUnzipped:  wasUnzipped,
			ContentType:  mimetype.Detect(data).String(),
		})
	}
}

func recordDownload(node *core.GatewayNode, requestID string, req DownloadRequest, started time.Time, opErr error) {
	entry := core.TransferLog{
		RequestID:  requestID,
		Operation:  utils.OP_DOWNLOAD,
		Host:       req.Host,
		Port:       req.Port,
		RemotePath: req.RemotePath,
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
