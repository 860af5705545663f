package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checker reports whether a dependency is usable.
type Checker interface {
	Check() error
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message,omitempty"`
}

// Router returns an HTTP handler serving MCP streamable HTTP on /mcp,
// Prometheus metrics from gatherer on /metrics, and liveness and readiness
// probes under /health. Readiness fails while any of checks fails.
func (s *Server) Router(gatherer prometheus.Gatherer, checks ...Checker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/mcp", server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath("/mcp")))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, http.StatusOK, "ok", "")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		for _, c := range checks {
			if err := c.Check(); err != nil {
				s.log.Error("readiness check failed", err)
				writeHealth(w, http.StatusServiceUnavailable, "fail", newFailure("pass readiness check", err).Error())
				return
			}
		}
		writeHealth(w, http.StatusOK, "ok", "")
	})

	return r
}

func writeHealth(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   message,
	})
}
