// Package server exposes the query engine over HTTP for the serve command:
// GET /search for ranked queries, GET /healthz for liveness, and
// GET /metrics for Prometheus scrapes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gwenf/tinysearch/internal/searcher"
	"github.com/gwenf/tinysearch/internal/segment"
	"github.com/gwenf/tinysearch/pkg/config"
	pkgerrors "github.com/gwenf/tinysearch/pkg/errors"
	"github.com/gwenf/tinysearch/pkg/logger"
	"github.com/gwenf/tinysearch/pkg/metrics"
)

// SearchResponse is the JSON body returned by /search.
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []searcher.Result `json:"results"`
	TookMS  float64           `json:"took_ms"`
}

// Server serves queries against one opened index.
type Server struct {
	reader   *segment.Reader
	metrics  *metrics.Metrics
	maxLimit int
	logger   *slog.Logger
	http     *http.Server
}

// New wires the routes and returns a Server listening per cfg once Run is
// called. maxLimit caps the per-request limit parameter.
func New(cfg config.ServerConfig, rd *segment.Reader, m *metrics.Metrics, maxLimit int) *Server {
	s := &Server{
		reader:   rd,
		metrics:  m,
		maxLimit: maxLimit,
		logger:   logger.WithComponent("server"),
	}
	mux := http.NewServeMux()
	mux.Handle("/search", s.instrument("/search", s.handleSearch))
	mux.Handle("/healthz", s.instrument("/healthz", s.handleHealth))
	mux.Handle("/metrics", m.Handler())
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("search server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}
	s.logger.Info("shutting down search server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit := s.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	results, err := searcher.Search(s.reader, query, limit)
	elapsed := time.Since(start)
	s.metrics.SearchLatency.Observe(elapsed.Seconds())
	if err != nil {
		s.metrics.SearchesTotal.WithLabelValues("error").Inc()
		s.logger.Error("search failed", "query", query, "error", err)
		s.writeError(w, pkgerrors.HTTPStatusCode(err), "search failed")
		return
	}
	outcome := "hit"
	if len(results) == 0 {
		outcome = "zero_result"
	}
	s.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	s.metrics.SearchResultsCount.Observe(float64(len(results)))

	if results == nil {
		results = []searcher.Result{}
	}
	s.writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		TookMS:  float64(elapsed.Microseconds()) / 1000,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// The blob handle going away is the one dependency that can fail
	// underneath a running server.
	if _, err := s.reader.BlobSize(); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "up",
		"documents": s.reader.DocCount(),
		"terms":     s.reader.TermCount(),
	})
}

// instrument records request count and latency per route, wrapping the
// handler with a status-capturing writer.
func (s *Server) instrument(path string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	return sw.ResponseWriter.Write(b)
}
