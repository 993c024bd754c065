// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jainesh-shah/CourtTracker/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and polling
// layers use. Prepared statements eliminate parse overhead on every cycle.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Devices
		"upsert_device": `INSERT INTO devices (owner_id, token, platform, is_active, registered_at)
			VALUES ($1, $2, $3, true, NOW())
			ON CONFLICT (owner_id, token) DO UPDATE SET is_active = true, platform = EXCLUDED.platform`,
		"owner_device_token": `SELECT token FROM devices
			WHERE owner_id = $1 AND is_active = true
			ORDER BY registered_at DESC LIMIT 1`,

		// Watch subscriptions
		"active_subscriptions": `SELECT id, owner_id, case_identifier,
				notify_early_warning, notify_approaching, notify_in_session, notify_completed,
				last_notification_sent, last_notification_time, active
			FROM watch_subscriptions WHERE active = true`,
		"owner_subscriptions": `SELECT id, owner_id, case_identifier,
				notify_early_warning, notify_approaching, notify_in_session, notify_completed,
				last_notification_sent, last_notification_time, active
			FROM watch_subscriptions WHERE owner_id = $1 AND active = true
			ORDER BY created_at`,
		"insert_subscription": `INSERT INTO watch_subscriptions (
				id, owner_id, case_identifier,
				notify_early_warning, notify_approaching, notify_in_session, notify_completed,
				last_notification_sent, active, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, 'none', true, NOW())`,
		"update_subscription_progress": `UPDATE watch_subscriptions
			SET last_notification_sent = $2, last_notification_time = $3
			WHERE id = $1`,
		"deactivate_subscription": `UPDATE watch_subscriptions SET active = false WHERE id = $1`,
		"count_case_watchers": `SELECT count(*) FROM watch_subscriptions
			WHERE active = true AND (case_identifier = $1 OR case_identifier LIKE '%:' || $1)`,

		// Case history
		"insert_history_entry": `INSERT INTO case_history (
				case_number, court_id, court_number, judge_name, status, queue_position, is_live, scraped_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (case_number, court_id, scraped_at) DO NOTHING`,
		"case_history": `SELECT case_number, court_id, court_number, judge_name, status, queue_position, is_live, scraped_at
			FROM case_history WHERE case_number = $1
			ORDER BY scraped_at DESC LIMIT $2`,

		// Case statistics
		"case_statistics": `SELECT case_number, total_appearances, courts_seen, judges_seen, status_history, watch_count, updated_at
			FROM case_statistics WHERE case_number = $1`,
		"upsert_case_statistics": `INSERT INTO case_statistics (
				case_number, total_appearances, courts_seen, judges_seen, status_history, watch_count, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (case_number) DO UPDATE SET
				total_appearances = EXCLUDED.total_appearances,
				courts_seen = EXCLUDED.courts_seen,
				judges_seen = EXCLUDED.judges_seen,
				status_history = EXCLUDED.status_history,
				watch_count = EXCLUDED.watch_count,
				updated_at = NOW()`,

		// Notification audit
		"insert_audit_outcome": `INSERT INTO notification_audit (
				subscription_id, owner_id, case_number, alert_type, delivered, reason, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		"subscription_audit": `SELECT subscription_id, owner_id, case_number, alert_type, delivered, reason, created_at
			FROM notification_audit WHERE subscription_id = $1
			ORDER BY created_at DESC LIMIT $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
