package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Jainesh-shah/CourtTracker/internal/api/handler"
	"github.com/Jainesh-shah/CourtTracker/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Polling status + live board
		r.Get("/status", h.GetStatus)
		r.Get("/board", h.GetBoard)
		r.Get("/live", h.LiveStream)

		// Devices
		r.Post("/devices", h.RegisterDevice)

		// Watchlist
		r.Get("/watchlist", h.GetWatchlist)
		r.Post("/watchlist", h.CreateWatch)
		r.Delete("/watchlist/{subscriptionID}", h.DeleteWatch)
		r.Get("/watchlist/{subscriptionID}/audit", h.GetWatchAudit)

		// Case history and statistics
		r.Get("/cases/{caseNumber}/history", h.GetCaseHistory)
		r.Get("/cases/{caseNumber}/statistics", h.GetCaseStatistics)
	})

	return r
}
