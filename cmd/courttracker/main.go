// Command courttracker runs the courtwise display board tracker.
//
// Usage:
//
//	courttracker serve
//	courttracker poll
//	API_PORT=8080 courttracker serve

// @title CourtTracker API
// @version 1.0.0
// @description Courtroom display board tracker: live queue positions, watchlists, and hearing alerts.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Jainesh-shah/CourtTracker/internal/api"
	"github.com/Jainesh-shah/CourtTracker/internal/api/handler"
	"github.com/Jainesh-shah/CourtTracker/internal/broadcast"
	"github.com/Jainesh-shah/CourtTracker/internal/cache"
	"github.com/Jainesh-shah/CourtTracker/internal/config"
	"github.com/Jainesh-shah/CourtTracker/internal/db"
	"github.com/Jainesh-shah/CourtTracker/internal/feed"
	"github.com/Jainesh-shah/CourtTracker/internal/history"
	"github.com/Jainesh-shah/CourtTracker/internal/notify"
	"github.com/Jainesh-shah/CourtTracker/internal/scheduler"
	"github.com/Jainesh-shah/CourtTracker/internal/watch"

	_ "github.com/Jainesh-shah/CourtTracker/docs" // swagger docs
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "courttracker",
		Short: "Courtroom display board tracker",
	}

	root.AddCommand(serveCmd())
	root.AddCommand(pollCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the poll scheduler and API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			logger.Info("Connecting to database...")
			pool, err := db.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()
			logger.Info("Database connected",
				"min_conns", cfg.DBPoolMinConns,
				"max_conns", cfg.DBPoolMaxConns)

			sched, hub, watches, archive, audit, err := buildPipeline(cfg, pool)
			if err != nil {
				return err
			}

			go sched.Run(ctx, scheduler.NewTicker(cfg.PollInterval))

			appCache := cache.New(cfg.CacheEnabled)
			h := handler.New(pool, appCache, cfg, sched, hub, watches, archive, audit)
			router := api.NewRouter(h, cfg)

			addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 0, // SSE connections stay open
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				logger.Info("Starting CourtTracker API",
					"addr", addr,
					"environment", cfg.Environment,
					"poll_interval", cfg.PollInterval)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Server failed", "error", err)
					os.Exit(1)
				}
			}()

			<-ctx.Done()
			logger.Info("Shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Shutdown error", "error", err)
			}
			logger.Info("Server stopped")
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// poll command
// --------------------------------------------------------------------------

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run one fetch-decide cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			pool, err := db.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			sched, _, _, _, _, err := buildPipeline(cfg, pool)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := sched.RunCycle(ctx); err != nil {
				return fmt.Errorf("poll cycle: %w", err)
			}
			logger.Info("Poll cycle finished", "duration", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// wiring
// --------------------------------------------------------------------------

func buildPipeline(cfg *config.Config, pool *db.Pool) (*scheduler.Scheduler, *broadcast.Hub,
	*watch.Store, *history.PgStore, *notify.PgAuditStore, error) {

	client, err := feed.NewClient(cfg.FeedBaseURL, cfg.FeedRequestsPerMin, logger)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("create feed client: %w", err)
	}

	watches := watch.NewStore(pool.Pool)
	archive := history.NewPgStore(pool.Pool)
	audit := notify.NewPgAuditStore(pool.Pool)
	hub := broadcast.NewHub()

	sender := notify.NewPushSender(cfg.PushAPIURL, cfg.PushAPIKey, logger)
	if sender == nil {
		logger.Info("Push delivery disabled (no PUSH_API_URL)")
	}
	dispatcher := notify.NewDispatcher(watches, sender, audit, logger)
	aggregator := history.NewAggregator(archive, logger)

	sched := scheduler.New(scheduler.Config{
		Interval:              cfg.PollInterval,
		EarlyWarningThreshold: cfg.EarlyWarningThreshold,
		Workers:               cfg.DecisionWorkers,
	}, client, watches, aggregator, dispatcher, hub, logger)

	return sched, hub, watches, archive, audit, nil
}
