package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/application-research/edge-sftp/config"
	"github.com/application-research/edge-sftp/core"
	"github.com/labstack/echo/v4"
)

type fakeSession struct {
	entries  []core.Entry
	files    map[string][]byte
	listErr  error
	getErr   error
	closeErr error

	lastListPath string
	lastGetPath  string
	closed       bool
}

func (s *fakeSession) List(path string) ([]core.Entry, error) {
	s.lastListPath = path
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.entries, nil
}

func (s *fakeSession) Get(path string) ([]byte, error) {
	s.lastGetPath = path
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.files[path], nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return s.closeErr
}

type fakeDialer struct {
	session *fakeSession
	err     error

	calls       int
	lastRetries int
	lastParams  core.ConnectionParams
}

func (d *fakeDialer) Connect(params core.ConnectionParams, retries int) (core.Session, error) {
	d.calls++
	d.lastRetries = retries
	d.lastParams = params
	if d.err != nil {
		return nil, d.err
	}
	return d.session, nil
}

func newTestNode(dialer core.Dialer) *core.GatewayNode {
	cfg := &config.GatewayConfig{}
	cfg.Node.Description = "HTTP to SFTP gateway"
	cfg.Node.Port = 3001
	cfg.Sftp.ConnectRetries = 1
	cfg.Common.BodyLimit = "50M"

	return &core.GatewayNode{
		Dialer:    dialer,
		Config:    cfg,
		StartTime: time.Now(),
	}
}

func newTestRouter(node *core.GatewayNode) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	defaultOpenRoute := e.Group("")
	ConfigureHealthCheckRouter(defaultOpenRoute, node)
	ConfigureStatsRouter(defaultOpenRoute, node)

	sftpGroup := e.Group("/sftp")
	ConfigureConnectionRouter(sftpGroup, node)
	ConfigureFoldersRouter(sftpGroup, node)
	ConfigureFilesRouter(sftpGroup, node)
	ConfigureDownloadRouter(sftpGroup, node)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
