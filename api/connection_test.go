package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestConnectionSuccess(t *testing.T) {
	dialer := &fakeDialer{session: &fakeSession{}}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/test-connection",
		`{"host":"sftp.example.com","username":"user","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp TestConnectionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "sftp.example.com", resp.Host)
	assert.Equal(t, 22, resp.Port)

	assert.Equal(t, 1, dialer.calls)
	assert.Equal(t, 1, dialer.lastRetries)
	assert.True(t, dialer.session.closed)
}

func TestTestConnectionExplicitPort(t *testing.T) {
	dialer := &fakeDialer{session: &fakeSession{}}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/test-connection",
		`{"host":"sftp.example.com","port":2222,"username":"user","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp TestConnectionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2222, resp.Port)
	assert.Equal(t, 2222, dialer.lastParams.Port)
}

func TestTestConnectionMissingParameters(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing host", `{"username":"user","password":"secret"}`},
		{"missing username", `{"host":"sftp.example.com","password":"secret"}`},
		{"missing password", `{"host":"sftp.example.com","username":"user"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialer := &fakeDialer{session: &fakeSession{}}
			e := newTestRouter(newTestNode(dialer))

			rec := doJSON(t, e, http.MethodPost, "/sftp/test-connection", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)

			// validation failures never reach the network
			assert.Equal(t, 0, dialer.calls)
		})
	}
}

func TestTestConnectionUpstreamFailure(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("dial tcp: connection refused")}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/test-connection",
		`{"host":"sftp.example.com","username":"user","password":"wrong"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Details, "connection refused")
}
