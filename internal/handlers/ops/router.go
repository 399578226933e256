// Package ops serves the process's operational HTTP endpoints.
package ops

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc reports nil when the process is healthy
type HealthFunc func() error

// Config holds the router's dependencies
type Config struct {
	// Gatherer backs /metrics
	Gatherer prometheus.Gatherer

	// Health backs /healthz; nil always reports healthy
	Health HealthFunc
}

type response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	data, _ := json.Marshal(payload)
	w.Write(data)
}

// NewRouter sets up the /metrics and /healthz routes
func NewRouter(cfg *Config) (*chi.Mux, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Gatherer == nil {
		return nil, errors.New("gatherer cannot be nil")
	}

	r := chi.NewRouter()

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(); err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, response{Status: "unhealthy", Error: err.Error()})
				return
			}
		}
		respondWithJSON(w, http.StatusOK, response{Status: "ok"})
	})

	return r, nil
}
