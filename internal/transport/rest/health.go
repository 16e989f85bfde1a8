package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to a health dependency.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type dependency struct {
	name     string
	pinger   pinger
	required bool
}

// HealthHandler serves health check endpoints. The database is always a
// required dependency. Backends registered with Optional only degrade the
// reported status.
type HealthHandler struct {
	deps    []dependency
	version string
}

// NewHealthHandler creates a HealthHandler for the given database.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		deps:    []dependency{{name: "database", pinger: db, required: true}},
		version: version,
	}
}

// Require registers a backend whose failure takes the service down.
func (h *HealthHandler) Require(name string, p pinger) *HealthHandler {
	h.deps = append(h.deps, dependency{name: name, pinger: p, required: true})
	return h
}

// Optional registers a backend whose failure marks the service degraded.
func (h *HealthHandler) Optional(name string, p pinger) *HealthHandler {
	h.deps = append(h.deps, dependency{name: name, pinger: p})
	return h
}

// HealthResponse is the JSON response for the probes.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status   string `json:"status"`
	Required bool   `json:"required"`
	Latency  string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Only required dependencies gate readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	for _, d := range h.deps {
		if !d.required {
			continue
		}
		if err := d.pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health pings every dependency with latency and reports the version.
// Status is "down" (503) when a required dependency fails and "degraded"
// (200) when only optional ones do.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.deps))
	overall := "ok"

	for _, d := range h.deps {
		start := time.Now()
		err := d.pinger.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components[d.name] = CompStatus{Status: "down", Required: d.required}
			switch {
			case d.required:
				overall = "down"
			case overall == "ok":
				overall = "degraded"
			}
			continue
		}
		components[d.name] = CompStatus{Status: "ok", Required: d.required, Latency: latency.String()}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
