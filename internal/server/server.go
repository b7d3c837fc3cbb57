// Package server exposes the figure pipeline over HTTP. It serves
// rendered figure rows as plain text so terminal clients can pipe them
// straight to the screen:
//
//	curl -s 'localhost:8787/v1/figure?mode=hist1d&file=chain.csv&x=0'
//
// File access is confined to a configured data root.
package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/binoviz/bino/pkg/cache"
	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/pipeline"
)

// Server wires the figure runner to an HTTP router.
type Server struct {
	Runner   *pipeline.Runner
	DataRoot string
	Logger   *log.Logger

	// Names optionally caches dataset listings. It should be a scoped
	// view when it shares a backend with the figure cache.
	Names    cache.Cache
	NamesTTL time.Duration
}

// New creates a server rooted at dataRoot. A nil logger falls back to
// the default logger.
func New(runner *pipeline.Runner, dataRoot string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, DataRoot: dataRoot, Logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/figure", s.handleFigure)
	r.Get("/v1/datasets", s.handleDatasets)
	return r
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// resolveFile confines a request file to the data root.
func (s *Server) resolveFile(name string) (string, error) {
	if err := errors.ValidateDataPath(name); err != nil {
		return "", err
	}
	return filepath.Join(s.DataRoot, filepath.Clean(name)), nil
}

// writeError maps an error code to an HTTP status and writes the user
// facing message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeDatasetNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInternal:
		status = http.StatusInternalServerError
	}
	http.Error(w, errors.UserMessage(err), status)
}
