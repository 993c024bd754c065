package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoDevice is returned when an owner has no active delivery token.
var ErrNoDevice = errors.New("no active device for owner")

// Store persists subscriptions and device registrations in Postgres.
// Statement names are registered in internal/db.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a subscription store backed by the shared pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ActiveSubscriptions returns every subscription with active = true.
func (s *Store) ActiveSubscriptions(ctx context.Context) ([]Subscription, error) {
	rows, err := s.pool.Query(ctx, "active_subscriptions")
	if err != nil {
		return nil, fmt.Errorf("query active subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// OwnerSubscriptions returns one owner's active watchlist.
func (s *Store) OwnerSubscriptions(ctx context.Context, ownerID string) ([]Subscription, error) {
	rows, err := s.pool.Query(ctx, "owner_subscriptions", ownerID)
	if err != nil {
		return nil, fmt.Errorf("query owner subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// Create inserts a new subscription.
func (s *Store) Create(ctx context.Context, sub Subscription) error {
	_, err := s.pool.Exec(ctx, "insert_subscription",
		sub.ID, sub.OwnerID, sub.CaseIdentifier,
		sub.Flags.EarlyWarning, sub.Flags.Approaching, sub.Flags.InSession, sub.Flags.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// UpdateProgress advances a subscription's notification progress. Only
// LastSent/LastSentAt are core-writable; structural fields never change here.
func (s *Store) UpdateProgress(ctx context.Context, id string, progress Progress, at time.Time) error {
	_, err := s.pool.Exec(ctx, "update_subscription_progress", id, string(progress), at)
	if err != nil {
		return fmt.Errorf("update subscription progress: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a subscription.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "deactivate_subscription", id)
	if err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", id)
	}
	return nil
}

// RegisterDevice upserts an owner's delivery token.
func (s *Store) RegisterDevice(ctx context.Context, ownerID, token, platform string) error {
	_, err := s.pool.Exec(ctx, "upsert_device", ownerID, token, platform)
	if err != nil {
		return fmt.Errorf("register device: %w", err)
	}
	return nil
}

// DeviceToken returns the owner's most recently registered active token.
func (s *Store) DeviceToken(ctx context.Context, ownerID string) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx, "owner_device_token", ownerID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoDevice
	}
	if err != nil {
		return "", fmt.Errorf("lookup device token: %w", err)
	}
	return token, nil
}

func scanSubscriptions(rows pgx.Rows) ([]Subscription, error) {
	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		var lastSent string
		if err := rows.Scan(
			&sub.ID, &sub.OwnerID, &sub.CaseIdentifier,
			&sub.Flags.EarlyWarning, &sub.Flags.Approaching, &sub.Flags.InSession, &sub.Flags.Completed,
			&lastSent, &sub.LastSentAt, &sub.Active,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		sub.LastSent = Progress(lastSent)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
