package http

import (
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claes/coursereport/internal/report"
	"github.com/claes/coursereport/internal/scan"
)

func quietScan() scan.Option {
	return scan.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeNotebook(t *testing.T, root, rel, title string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	nb := `{"cells":[{"cell_type":"markdown","source":"# ` + title + `\nDescription."}]}`
	require.NoError(t, os.WriteFile(p, []byte(nb), 0o644))
}

func TestHealthHandler_OK(t *testing.T) {
	mux := NewServer(t.TempDir(), report.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, 200, rr.Code)
	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestReport_RendersFreshScan(t *testing.T) {
	root := t.TempDir()
	writeNotebook(t, root, "Course 1: NN/Week 1/Intro/intro.ipynb", "Intro & <Basics>")
	mux := NewServer(root, report.Options{Title: "Preview"}, quietScan())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "<h1>Preview</h1>")
	assert.Contains(t, body, "Intro &amp; &lt;Basics&gt;")

	// New content shows up without restarting the server.
	writeNotebook(t, root, "Course 2: CNN/Week 1/Conv/conv.ipynb", "Convolutions")
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "Course 2: CNN")
}

func TestReport_UsesInjectedClock(t *testing.T) {
	s := &server{root: t.TempDir(), log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }}
	rr := httptest.NewRecorder()
	s.handleReport(rr, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "2026-01-02 03:04:05")
}

func TestReport_MissingRoot(t *testing.T) {
	mux := NewServer(filepath.Join(t.TempDir(), "gone"), report.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, nethttp.StatusInternalServerError, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))
}

func TestReport_NotFoundAndMethod(t *testing.T) {
	mux := NewServer(t.TempDir(), report.Options{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, nethttp.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, nethttp.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
}
