package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/application-research/edge-sftp/core"
	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/xerrors"
)

var (
	OsSignal chan os.Signal
	log      = logging.Logger("router")
)

// endpointList is what the 404 handler and the service info route advertise.
var endpointList = []string{
	"GET /",
	"GET /health",
	"GET /stats",
	"POST /sftp/test-connection",
	"POST /sftp/list-folders",
	"POST /sftp/list",
	"POST /sftp/download",
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type NotFoundResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	Endpoints []string `json:"endpoints"`
}

// InitializeEchoRouterConfig configures the API node and blocks until the
// process is told to stop. In-flight requests drain before exit.
func InitializeEchoRouterConfig(node *core.GatewayNode) {
	// Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))
	e.Use(middleware.BodyLimit(node.Config.Common.BodyLimit))
	e.Pre(middleware.RemoveTrailingSlash())
	e.HTTPErrorHandler = ErrorHandler

	defaultOpenRoute := e.Group("")
	ConfigureHealthCheckRouter(defaultOpenRoute, node)
	ConfigureStatsRouter(defaultOpenRoute, node)

	sftpGroup := e.Group("/sftp")
	ConfigureConnectionRouter(sftpGroup, node)
	ConfigureFoldersRouter(sftpGroup, node)
	ConfigureFilesRouter(sftpGroup, node)
	ConfigureDownloadRouter(sftpGroup, node)

	// Start server
	addrPort := fmt.Sprintf("0.0.0.0:%d", node.Config.Node.Port)
	go func() {
		if err := e.Start(addrPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	LoopForever()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("shutdown error: %s", err)
	}
}

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if xerrors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			if err := c.JSON(http.StatusNotFound, NotFoundResponse{
				Success:   false,
				Error:     "route not found",
				Endpoints: endpointList,
			}); err != nil {
				log.Errorf("handler error: %s", err)
			}
			return
		}
		if err := c.JSON(echoErr.Code, ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("%v", echoErr.Message),
		}); err != nil {
			log.Errorf("handler error: %s", err)
		}
		return
	}

	log.Errorf("handler error: %s", err)
	if err := c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	}); err != nil {
		log.Errorf("handler error: %s", err)
	}
}

// missingParameter rejects the request before any connection is attempted.
func missingParameter(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// upstreamError relays the sftp library's message to the caller. Redaction,
// if it ever lands, goes here and nowhere else.
func upstreamError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func archiveError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   "failed to extract archive",
		Details: err.Error(),
	})
}

// closeSession tolerates close failures so they never mask the result of the
// operation itself.
func closeSession(session core.Session) {
	if err := session.Close(); err != nil {
		log.Errorf("failed to close sftp session: %s", err)
	}
}

func recordTransfer(node *core.GatewayNode, entry core.TransferLog) {
	if node.DB == nil {
		return
	}
	if err := node.DB.Create(&entry).Error; err != nil {
		log.Errorf("failed to record transfer: %s", err)
	}
}

// LoopForever on signal processing
func LoopForever() {
	OsSignal = make(chan os.Signal, 1)
	signal.Notify(OsSignal, syscall.SIGINT, syscall.SIGTERM)
	<-OsSignal
	log.Info("received shutdown signal, draining requests")
}
