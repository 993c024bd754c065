package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// TokenSource resolves an owner to an active delivery token.
type TokenSource interface {
	DeviceToken(ctx context.Context, ownerID string) (string, error)
}

// Dispatcher is the fire-and-forget delivery path: token lookup, intent
// build, send, audit. A delivery failure is recorded and logged but never
// propagated — the subscription's state transition is already committed.
type Dispatcher struct {
	tokens TokenSource
	sender *PushSender
	audit  AuditStore
	logger *slog.Logger
}

// NewDispatcher wires the delivery path.
func NewDispatcher(tokens TokenSource, sender *PushSender, audit AuditStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{tokens: tokens, sender: sender, audit: audit, logger: logger}
}

// Dispatch sends one decided alert for one subscription.
func (d *Dispatcher) Dispatch(ctx context.Context, sub watch.Subscription, alert watch.Alert) {
	now := time.Now().UTC()
	outcome := Outcome{
		SubscriptionID: sub.ID,
		OwnerID:        sub.OwnerID,
		CaseNumber:     alert.CaseNumber,
		Alert:          alert.Type,
		At:             now,
	}

	token, err := d.tokens.DeviceToken(ctx, sub.OwnerID)
	if err != nil {
		outcome.Reason = err.Error()
		d.logger.Warn("no delivery token", "owner", sub.OwnerID, "error", err)
		d.record(ctx, outcome)
		return
	}

	intent := BuildIntent(sub, token, alert)
	if err := d.sender.Send(ctx, intent); err != nil {
		outcome.Reason = err.Error()
		d.logger.Warn("push delivery failed",
			"subscription", sub.ID, "alert", alert.Type, "error", err)
		d.record(ctx, outcome)
		return
	}

	outcome.Delivered = true
	d.logger.Info("alert dispatched",
		"subscription", sub.ID, "case", alert.CaseNumber, "alert", alert.Type)
	d.record(ctx, outcome)
}

func (d *Dispatcher) record(ctx context.Context, o Outcome) {
	if d.audit == nil {
		return
	}
	if err := d.audit.RecordOutcome(ctx, o); err != nil {
		d.logger.Warn("audit write failed", "subscription", o.SubscriptionID, "error", err)
	}
}
