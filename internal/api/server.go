// Package api is the HTTP surface over the scheduling engine.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"openhours/internal/service"
)

// HTTPServer serves the hours API.
type HTTPServer struct {
	server  *http.Server
	svc     *service.Service
	logger  *zerolog.Logger
	limiter *rate.Limiter
}

// NewHTTPServer builds the server with routing and middleware wired.
func NewHTTPServer(addr string, svc *service.Service, rps float64, burst int, logger *zerolog.Logger) *HTTPServer {
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 40
	}

	s := &HTTPServer{
		svc:     svc,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/locations/{id}/status", s.handleStatus)
	mux.HandleFunc("/api/v1/locations/{id}/hours", s.handleHours)
	mux.HandleFunc("/api/v1/locations/{id}/hours/export", s.handleExport)
	mux.HandleFunc("/api/v1/locations/{id}/overrides", s.handleOverrides)
	mux.HandleFunc("/api/v1/locations/{id}/overrides/{overrideID}", s.handleOverrideByID)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.withMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the wrapped handler, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the server until ctx is canceled.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("hours API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func locationID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
