package api

import (
	"net/http"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TestConnectionRequest struct {
	core.ConnectionParams
}

type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

func ConfigureConnectionRouter(e *echo.Group, node *core.GatewayNode) {
	e.POST("/test-connection", handleTestConnection(node))
}

// handleTestConnection opens a session with a bounded timeout and one retry,
// then immediately closes it.
func handleTestConnection(node *core.GatewayNode) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req TestConnectionRequest
		if err := c.Bind(&req); err != nil {
			return missingParameter(c, "invalid request body")
		}

		if req.Host == "" || req.Username == "" || req.Password == "" {
			return missingParameter(c, "host, username and password are required")
		}

		requestID := uuid.New().String()
		port := req.Port
		if port == 0 {
			port = core.DefaultSftpPort
		}

		started := time.Now()
		session, err := node.Dialer.Connect(req.ConnectionParams, node.Config.Sftp.ConnectRetries)
		if err != nil {
			log.Errorf("[%s] connection test to %s failed: %s", requestID, req.Addr(), err)
			recordTransfer(node, core.TransferLog{
				RequestID:  requestID,
				Operation:  utils.OP_TEST_CONNECTION,
				Host:       req.Host,
				Port:       port,
				Status:     utils.STATUS_ERROR,
				Message:    err.Error(),
				DurationMs: time.Since(started).Milliseconds(),
				CreatedAt:  time.Now(),
			})
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   "connection failed, verify host, port and credentials",
				Details: err.Error(),
			})
		}
		closeSession(session)

		recordTransfer(node, core.TransferLog{
			RequestID:  requestID,
			Operation:  utils.OP_TEST_CONNECTION,
			Host:       req.Host,
			Port:       port,
			Status:     utils.STATUS_SUCCESS,
			DurationMs: time.Since(started).Milliseconds(),
			CreatedAt:  time.Now(),
		})

		return c.JSON(http.StatusOK, TestConnectionResponse{
			Success: true,
			Message: "connection successful",
			Host:    req.Host,
			Port:    port,
		})
	}
}
