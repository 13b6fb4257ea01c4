package api

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/application-research/edge-sftp/core"
	"github.com/stretchr/testify/assert"
)

func TestListFilesDerivedFields(t *testing.T) {
	now := time.Now()
	session := &fakeSession{
		entries: []core.Entry{
			{Name: "Report.PDF", Mode: 0644, ModTime: now, Size: 2048},
			{Name: "data.tar.gz", Mode: 0644, ModTime: now, Size: 512},
			{Name: "README", Mode: 0644, ModTime: now, Size: 64},
			{Name: "archive", Mode: os.ModeDir | 0755, ModTime: now},
			{Name: ".", Mode: os.ModeDir | 0755, ModTime: now},
			{Name: "..", Mode: os.ModeDir | 0755, ModTime: now},
		},
	}
	dialer := &fakeDialer{session: session}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/list",
		`{"host":"sftp.example.com","username":"user","password":"secret","remotePath":"/inbox","assureur":"axa"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListFilesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "/inbox", resp.RemotePath)
	assert.Equal(t, "axa", resp.Assureur)
	assert.Equal(t, len(resp.Files), resp.Count)
	assert.Len(t, resp.Files, 3)

	byName := map[string]FileEntry{}
	for _, f := range resp.Files {
		byName[f.Name] = f
	}

	assert.Equal(t, "pdf", byName["Report.PDF"].Type)
	assert.Equal(t, "/inbox/Report.PDF", byName["Report.PDF"].FullPath)

	assert.Equal(t, "gz", byName["data.tar.gz"].Type)

	// a name without a dot uses the whole name, lowercased
	assert.Equal(t, "readme", byName["README"].Type)
	assert.Equal(t, "/inbox/README", byName["README"].FullPath)
}

func TestListFilesNoPathNormalization(t *testing.T) {
	session := &fakeSession{
		entries: []core.Entry{
			{Name: "f.csv", Mode: 0644, ModTime: time.Now()},
		},
	}
	dialer := &fakeDialer{session: session}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/list",
		`{"host":"sftp.example.com","username":"user","password":"secret","remotePath":"/inbox/"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListFilesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// plain concatenation, double slash preserved
	assert.Equal(t, "/inbox//f.csv", resp.Files[0].FullPath)
}

func TestListFilesMaxAgeFilter(t *testing.T) {
	now := time.Now()
	session := &fakeSession{
		entries: []core.Entry{
			{Name: "fresh.csv", Mode: 0644, ModTime: now},
			{Name: "inside.csv", Mode: 0644, ModTime: now.AddDate(0, 0, -7).Add(time.Minute)},
			{Name: "stale.csv", Mode: 0644, ModTime: now.AddDate(0, 0, -7).Add(-time.Minute)},
			{Name: "ancient.csv", Mode: 0644, ModTime: now.AddDate(0, 0, -30)},
		},
	}
	dialer := &fakeDialer{session: session}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/list",
		`{"host":"sftp.example.com","username":"user","password":"secret","remotePath":"/inbox","maxAgeInDays":7}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListFilesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	names := []string{resp.Files[0].Name, resp.Files[1].Name}
	assert.Contains(t, names, "fresh.csv")
	assert.Contains(t, names, "inside.csv")
}

func TestListFilesNoAgeFilterWhenOmitted(t *testing.T) {
	now := time.Now()
	session := &fakeSession{
		entries: []core.Entry{
			{Name: "ancient.csv", Mode: 0644, ModTime: now.AddDate(-1, 0, 0)},
		},
	}
	dialer := &fakeDialer{session: session}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/list",
		`{"host":"sftp.example.com","username":"user","password":"secret","remotePath":"/inbox"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListFilesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestListFilesMissingRemotePath(t *testing.T) {
	dialer := &fakeDialer{session: &fakeSession{}}
	e := newTestRouter(newTestNode(dialer))

	rec := doJSON(t, e, http.MethodPost, "/sftp/list",
		`{"host":"sftp.example.com","username":"user","password":"secret"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, dialer.calls)
}

func TestFileType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Report.PDF", "pdf"},
		{"data.tar.gz", "gz"},
		{"README", "readme"},
		{".hidden", "hidden"},
		{"trailing.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileType(tt.name))
		})
	}
}
