// Package history derives the append-only observation log and rolling
// per-case statistics from each board snapshot.
//
// The aggregator is independent of the notification pipeline: it may run
// before, after, or concurrently with subscription decisions, and a failure
// on one record never blocks the rest of the snapshot.
package history

import (
	"time"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

// MaxStatusHistory bounds the rolling status log per case; the oldest
// entries drop first.
const MaxStatusHistory = 100

// Entry is one immutable observation of a case in a court at one scrape
// time. The (CaseNumber, CourtID, ScrapedAt) triple is the natural key;
// duplicates from overlapping cycles are ignored, never an error.
type Entry struct {
	CaseNumber    string          `json:"case_number"`
	CourtID       string          `json:"court_id"`
	CourtNumber   string          `json:"court_number"`
	JudgeName     string          `json:"judge_name"`
	Status        feed.CaseStatus `json:"status"`
	QueuePosition *int            `json:"queue_position,omitempty"`
	IsLive        bool            `json:"is_live"`
	ScrapedAt     time.Time       `json:"scraped_at"`
}

// EntryFromRecord builds the history entry for one court record.
func EntryFromRecord(r feed.CourtRecord) Entry {
	return Entry{
		CaseNumber:    r.CaseNumber,
		CourtID:       r.CourtID,
		CourtNumber:   r.CourtNumber,
		JudgeName:     r.JudgeName,
		Status:        r.Status,
		QueuePosition: r.QueuePosition,
		IsLive:        r.IsLive,
		ScrapedAt:     r.ScrapedAt,
	}
}

// StatusPoint is one observation in a case's rolling status history.
type StatusPoint struct {
	CourtID    string          `json:"court_id"`
	Status     feed.CaseStatus `json:"status"`
	Position   *int            `json:"position,omitempty"`
	ObservedAt time.Time       `json:"observed_at"`
}

// CaseStatistics is the derived aggregate for one case number. Counters and
// sets grow monotonically; WatchCount is denormalized from the active
// subscription count at each update.
type CaseStatistics struct {
	CaseNumber       string        `json:"case_number"`
	TotalAppearances int           `json:"total_appearances"`
	CourtsSeen       []string      `json:"courts_seen"`
	JudgesSeen       []string      `json:"judges_seen"`
	StatusHistory    []StatusPoint `json:"status_history"`
	WatchCount       int           `json:"watch_count"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
