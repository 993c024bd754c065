package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// Outcome is one audit record: what was decided and whether delivery worked.
type Outcome struct {
	SubscriptionID string          `json:"subscription_id"`
	OwnerID        string          `json:"owner_id"`
	CaseNumber     string          `json:"case_number"`
	Alert          watch.AlertType `json:"alert_type"`
	Delivered      bool            `json:"delivered"`
	Reason         string          `json:"reason,omitempty"`
	At             time.Time       `json:"created_at"`
}

// AuditStore records dispatch outcomes.
type AuditStore interface {
	RecordOutcome(ctx context.Context, o Outcome) error
}

// PgAuditStore is the Postgres-backed audit trail.
type PgAuditStore struct {
	pool *pgxpool.Pool
}

// NewPgAuditStore creates an audit store backed by the shared pool.
func NewPgAuditStore(pool *pgxpool.Pool) *PgAuditStore {
	return &PgAuditStore{pool: pool}
}

// RecordOutcome appends one audit row.
func (s *PgAuditStore) RecordOutcome(ctx context.Context, o Outcome) error {
	_, err := s.pool.Exec(ctx, "insert_audit_outcome",
		o.SubscriptionID, o.OwnerID, o.CaseNumber, string(o.Alert),
		o.Delivered, o.Reason, o.At,
	)
	if err != nil {
		return fmt.Errorf("insert audit outcome: %w", err)
	}
	return nil
}

// Outcomes returns the most recent audit rows for a subscription.
func (s *PgAuditStore) Outcomes(ctx context.Context, subscriptionID string, limit int) ([]Outcome, error) {
	rows, err := s.pool.Query(ctx, "subscription_audit", subscriptionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query subscription audit: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		var alert string
		if err := rows.Scan(&o.SubscriptionID, &o.OwnerID, &o.CaseNumber,
			&alert, &o.Delivered, &o.Reason, &o.At); err != nil {
			return nil, fmt.Errorf("scan audit outcome: %w", err)
		}
		o.Alert = watch.AlertType(alert)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
