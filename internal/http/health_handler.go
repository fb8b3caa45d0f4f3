package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"bookcatalog/internal/httpx"
)

const (
	serviceName    = "bookcatalog"
	serviceVersion = "v1"
	serviceFamily  = "generic"
)

// Pinger is what the readiness probe needs from the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	startTime time.Time
}

func NewHealthHandler(db Pinger, startTime time.Time) *HealthHandler {
	return &HealthHandler{db: db, startTime: startTime}
}

// Healthcheck is the liveness probe; it never touches the database.
func (h *HealthHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the store is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "db not ready")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Telemetry reports service identity and uptime.
func (h *HealthHandler) Telemetry(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"microservice_name":    serviceName,
		"microservice_version": serviceVersion,
		"microservice_family":  serviceFamily,
		"os_version":           runtime.GOOS + "/" + runtime.GOARCH,
		"uptime_in_secs":       int(time.Since(h.startTime).Seconds()),
	})
}
