// Package handler provides HTTP handlers for all API endpoints. Handlers
// read the scheduler and stores directly; there is no service layer.
package handler

import (
	"net/http"
	"time"

	"github.com/Jainesh-shah/CourtTracker/internal/api/respond"
	"github.com/Jainesh-shah/CourtTracker/internal/broadcast"
	"github.com/Jainesh-shah/CourtTracker/internal/cache"
	"github.com/Jainesh-shah/CourtTracker/internal/config"
	"github.com/Jainesh-shah/CourtTracker/internal/db"
	"github.com/Jainesh-shah/CourtTracker/internal/history"
	"github.com/Jainesh-shah/CourtTracker/internal/notify"
	"github.com/Jainesh-shah/CourtTracker/internal/scheduler"
	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool    *db.Pool
	cache   *cache.Cache
	cfg     *config.Config
	sched   *scheduler.Scheduler
	hub     *broadcast.Hub
	watches *watch.Store
	archive *history.PgStore
	audit   *notify.PgAuditStore
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, c *cache.Cache, cfg *config.Config, sched *scheduler.Scheduler,
	hub *broadcast.Hub, watches *watch.Store, archive *history.PgStore, audit *notify.PgAuditStore) *Handler {
	return &Handler{
		pool:    pool,
		cache:   c,
		cfg:     cfg,
		sched:   sched,
		hub:     hub,
		watches: watches,
		archive: archive,
		audit:   audit,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "CourtTracker API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
