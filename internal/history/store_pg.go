package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

// PgStore is the Postgres-backed Store. Statement names are registered in
// internal/db; the history insert relies on ON CONFLICT DO NOTHING to
// absorb overlapping-cycle duplicates.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a store backed by the shared pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// AppendEntry inserts one observation; duplicate natural keys are a no-op.
func (s *PgStore) AppendEntry(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, "insert_history_entry",
		e.CaseNumber, e.CourtID, e.CourtNumber, e.JudgeName,
		string(e.Status), e.QueuePosition, e.IsLive, e.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Entries returns the most recent observations for a case, newest first.
func (s *PgStore) Entries(ctx context.Context, caseNumber string, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, "case_history", caseNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("query case history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.CaseNumber, &e.CourtID, &e.CourtNumber, &e.JudgeName,
			&status, &e.QueuePosition, &e.IsLive, &e.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Status = feed.CaseStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Statistics returns the aggregate for a case, or nil when unseen.
func (s *PgStore) Statistics(ctx context.Context, caseNumber string) (*CaseStatistics, error) {
	var stats CaseStatistics
	err := s.pool.QueryRow(ctx, "case_statistics", caseNumber).Scan(
		&stats.CaseNumber, &stats.TotalAppearances,
		&stats.CourtsSeen, &stats.JudgesSeen, &stats.StatusHistory,
		&stats.WatchCount, &stats.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query case statistics: %w", err)
	}
	return &stats, nil
}

// PutStatistics upserts the aggregate row for a case.
func (s *PgStore) PutStatistics(ctx context.Context, stats CaseStatistics) error {
	_, err := s.pool.Exec(ctx, "upsert_case_statistics",
		stats.CaseNumber, stats.TotalAppearances,
		stats.CourtsSeen, stats.JudgesSeen, stats.StatusHistory,
		stats.WatchCount,
	)
	if err != nil {
		return fmt.Errorf("upsert case statistics: %w", err)
	}
	return nil
}

// ActiveWatchers counts active subscriptions referencing a case number,
// in either bare or court-scoped identifier form.
func (s *PgStore) ActiveWatchers(ctx context.Context, caseNumber string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "count_case_watchers", caseNumber).Scan(&n); err != nil {
		return 0, fmt.Errorf("count case watchers: %w", err)
	}
	return n, nil
}
