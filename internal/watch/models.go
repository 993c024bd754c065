// Package watch holds per-case subscriptions and the notification state
// machine that advances them as board snapshots arrive.
package watch

import (
	"time"

	"github.com/google/uuid"
)

// Progress is how far a subscription's alert sequence has advanced.
// It only ever moves forward within one appearance of a case:
// none → early_warning → approaching → in_session → completed. A completed
// subscription becomes eligible again when its case reappears.
type Progress string

const (
	ProgressNone         Progress = "none"
	ProgressEarlyWarning Progress = "early_warning"
	ProgressApproaching  Progress = "approaching"
	ProgressInSession    Progress = "in_session"
	ProgressCompleted    Progress = "completed"
)

// AlertType identifies one of the four alert kinds a decision can emit.
type AlertType string

const (
	AlertEarlyWarning AlertType = "early_warning"
	AlertApproaching  AlertType = "approaching"
	AlertInSession    AlertType = "in_session"
	AlertCompleted    AlertType = "completed"
)

// Flags toggles each alert kind independently.
type Flags struct {
	EarlyWarning bool `json:"early_warning"`
	Approaching  bool `json:"approaching"`
	InSession    bool `json:"in_session"`
	Completed    bool `json:"completed"`
}

// DefaultFlags enables every alert kind.
func DefaultFlags() Flags {
	return Flags{EarlyWarning: true, Approaching: true, InSession: true, Completed: true}
}

// Subscription is one user's standing interest in one case. The core only
// ever mutates LastSent and LastSentAt; structural fields belong to the API
// layer and are soft-deactivated, never deleted, from there.
type Subscription struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	CaseIdentifier string     `json:"case_identifier"`
	Flags          Flags      `json:"flags"`
	LastSent       Progress   `json:"last_notification_sent"`
	LastSentAt     *time.Time `json:"last_notification_time,omitempty"`
	Active         bool       `json:"active"`
}

// NewSubscription creates an active subscription in the initial state.
func NewSubscription(ownerID, caseIdentifier string, flags Flags) Subscription {
	return Subscription{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		CaseIdentifier: caseIdentifier,
		Flags:          flags,
		LastSent:       ProgressNone,
		Active:         true,
	}
}
