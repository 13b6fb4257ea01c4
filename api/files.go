package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ListFilesRequest struct {
	core.ConnectionParams
	RemotePath   string `json:"remotePath"`
	Assureur     string `json:"assureur,omitempty"`
	MaxAgeInDays *int   `json:"maxAgeInDays,omitempty"`
}

type FileEntry struct {
	Name       string `json:"name"`
	ModifyTime int64  `json:"modifyTime"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	FullPath   string `json:"fullPath"`
}

type ListFilesResponse struct {
	Success    bool        `json:"success"`
	Files      []FileEntry `json:"files"`
	Count      int         `json:"count"`
	RemotePath string      `json:"remotePath"`
	Assureur   string      `json:"assureur"`
}

func ConfigureFilesRouter(e *echo.Group, node *core.GatewayNode) {
	e.POST("/list", handleListFiles(node))
}

func handleListFiles(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ListFilesRequest
		if err := c.Bind(&req); err != nil {
			return missingParameter(c, "invalid request body")
		}

		if req.Host == "" || req.Username == "" || req.Password == "" || req.RemotePath == "" {
			return missingParameter(c, "host, username, password and remotePath are required")
		}

		requestID := uuid.New().String()
		started := time.Now()
		log.Infof("[%s] listing %s on %s for %s", requestID, req.RemotePath, req.Addr(), req.Assureur)

		session, err := node.Dialer.Connect(req.ConnectionParams, 0)
		if err != nil {
			recordFileListing(node, requestID, req, started, err)
			return upstreamError(c, err)
		}
		defer closeSession(session)

		entries, err := session.List(req.RemotePath)
		if err != nil {
			recordFileListing(node, requestID, req, started, err)
			return upstreamError(c, err)
		}

		var cutoff time.Time
		if req.MaxAgeInDays != nil {
			cutoff = time.Now().AddDate(0, 0, -*req.MaxAgeInDays)
		}

		files := make([]FileEntry, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsRegular() || entry.Name == "." || entry.Name == ".." {
				continue
			}
			// a file modified exactly at the cutoff instant stays in
			if req.MaxAgeInDays != nil && entry.ModTime.Before(cutoff) {
				continue
			}
			files = append(files, FileEntry{
				Name:       entry.Name,
				ModifyTime: entry.ModTime.UnixMilli(),
				Size:       entry.Size,
				Type:       fileType(entry.Name),
				FullPath:   req.RemotePath + "/" + entry.Name,
			})
		}

		recordFileListing(node, requestID, req, started, nil)

		return c.JSON(http.StatusOK, ListFilesResponse{
			Success:    true,
			Files:      files,
			Count:      len(files),
			RemotePath: req.RemotePath,
			Assureur:   req.Assureur,
		})
	}
}

// fileType is the lowercase text after the last dot. A name without a dot
// degrades to the entire name, which is what the callers expect today.
func fileType(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return strings.ToLower(name[idx+1:])
	}
	return strings.ToLower(name)
}

func recordFileListing(node *core.GatewayNode, requestID string, req ListFilesRequest, started time.Time, opErr error) {
	entry := core.TransferLog{
		RequestID:  requestID,
		Operation:  utils.OP_LIST_FILES,
		Host:       req.Host,
		Port:       req.Port,
		RemotePath: req.RemotePath,
		Assureur:   req.Assureur,
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
