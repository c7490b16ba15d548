package http

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/claes/coursereport/internal/report"
	"github.com/claes/coursereport/internal/scan"
)

type server struct {
	root     string
	opts     report.Options
	scanOpts []scan.Option
	log      *slog.Logger
	now      func() time.Time
}

// NewServer creates an HTTP handler that serves a freshly scanned report of
// root on every request to "/".
func NewServer(root string, opts report.Options, scanOpts ...scan.Option) nethttp.Handler {
	s := &server{root: root, opts: opts, scanOpts: scanOpts, log: slog.Default(), now: time.Now}
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/", s.handleReport)
	mux.Handle("/health", HealthHandler())
	return mux
}

func (s *server) handleReport(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		httpError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sc, err := scan.Open(s.root, s.scanOpts...)
	if err != nil {
		s.log.Error("scan root unavailable", "root", s.root, "err", err)
		httpError(w, nethttp.StatusInternalServerError, "unable to read course directory")
		return
	}
	cat, err := sc.Scan()
	if err != nil {
		s.log.Error("scan failed", "root", s.root, "err", err)
		httpError(w, nethttp.StatusInternalServerError, "unable to read course directory")
		return
	}
	opts := s.opts
	opts.GeneratedAt = s.now()
	body, err := report.RenderBytes(cat, opts)
	if err != nil {
		s.log.Error("render failed", "err", err)
		httpError(w, nethttp.StatusInternalServerError, "unable to render report")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// HealthHandler returns a simple health check endpoint.
func HealthHandler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
