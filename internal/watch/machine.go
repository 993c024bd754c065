package watch

import (
	"time"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
	"github.com/Jainesh-shah/CourtTracker/internal/queue"
)

const (
	// RepeatInterval throttles repeated in-session alerts for the same case.
	RepeatInterval = 5 * time.Minute

	// DefaultEarlyWarningThreshold is the largest queue position that still
	// triggers an early warning.
	DefaultEarlyWarningThreshold = 5
)

// Alert is one notification the state machine decided to emit. Court is nil
// for completed alerts, where the case has already left the board.
type Alert struct {
	Type       AlertType
	CaseNumber string
	Position   int
	Court      *feed.CourtRecord
}

// Decision is the outcome of running one subscription against one snapshot.
// Changed reports whether LastSent/LastSentAt advanced and must be
// persisted. At most one Alert is ever attached.
type Decision struct {
	Progress Progress
	At       time.Time
	Changed  bool
	Alert    *Alert
}

// Decide runs one notification decision for one subscription against the
// current snapshot. Pure aside from reading the subscription's own state;
// the caller persists the returned progress and dispatches the alert.
//
// Case identity is the identifier's (case number, court scope) pair. Any
// gap-then-reappearance is treated as a new appearance: a completed
// subscription that sees its case pending again is eligible for early
// warning and approaching alerts without reverting to none. The upstream
// board cannot distinguish a reappearing case from a different case filed
// under the same number, so neither does this machine.
func Decide(sub Subscription, snap *feed.Snapshot, now time.Time, threshold int) Decision {
	if threshold < 1 {
		threshold = DefaultEarlyWarningThreshold
	}
	unchanged := Decision{Progress: sub.LastSent, At: now}

	id, err := ParseIdentifier(sub.CaseIdentifier)
	if err != nil {
		return unchanged
	}

	rec := id.Match(snap.Courts)

	// Case has left the board: one completion alert, then silence.
	if rec == nil {
		if sub.Flags.Completed && (sub.LastSent == ProgressInSession || sub.LastSent == ProgressApproaching) {
			return Decision{
				Progress: ProgressCompleted,
				At:       now,
				Changed:  true,
				Alert:    &Alert{Type: AlertCompleted, CaseNumber: id.CaseLabel()},
			}
		}
		return unchanged
	}

	// In session is terminal for the cycle: no queue checks run after it.
	if rec.Status == feed.StatusInSession {
		if !sub.Flags.InSession {
			return unchanged
		}
		if sub.LastSent != ProgressInSession || sub.LastSentAt == nil || now.Sub(*sub.LastSentAt) >= RepeatInterval {
			return Decision{
				Progress: ProgressInSession,
				At:       now,
				Changed:  true,
				Alert:    &Alert{Type: AlertInSession, CaseNumber: rec.CaseNumber, Court: rec},
			}
		}
		return unchanged
	}

	// Pending: rank the case within its court. A record matched by queue
	// serial alone may carry no case number (status UNKNOWN); nothing to
	// rank there.
	if rec.CaseNumber == "" {
		return unchanged
	}
	pos, ok := queue.Resolve(rec.CaseNumber, rec.CourtID, snap.Courts)
	if !ok {
		return unchanged
	}

	if sub.Flags.EarlyWarning && pos > 1 && pos <= threshold &&
		(sub.LastSent == ProgressNone || sub.LastSent == ProgressCompleted) {
		return Decision{
			Progress: ProgressEarlyWarning,
			At:       now,
			Changed:  true,
			Alert:    &Alert{Type: AlertEarlyWarning, CaseNumber: rec.CaseNumber, Position: pos, Court: rec},
		}
	}

	if sub.Flags.Approaching && pos == 1 &&
		sub.LastSent != ProgressApproaching && sub.LastSent != ProgressInSession {
		return Decision{
			Progress: ProgressApproaching,
			At:       now,
			Changed:  true,
			Alert:    &Alert{Type: AlertApproaching, CaseNumber: rec.CaseNumber, Position: pos, Court: rec},
		}
	}

	return unchanged
}
