// Package feed fetches the courtwise display board and normalizes it into
// canonical per-court snapshots.
//
// The board comes in two payloads keyed by a shared court id: a loosely-typed
// row list (queue serial + case info per court) and a markup fragment (judge,
// photos, stream link, live indicator). Both tolerate missing or placeholder
// ("-") values in any field.
package feed

import "time"

// CaseStatus classifies what a courtroom is currently doing with its case.
type CaseStatus string

const (
	StatusInSession   CaseStatus = "IN_SESSION"
	StatusRecess      CaseStatus = "RECESS"
	StatusSittingOver CaseStatus = "SITTING_OVER"
	StatusUnknown     CaseStatus = "UNKNOWN"
)

// BenchType distinguishes single-judge from division benches.
type BenchType string

const (
	BenchSingle   BenchType = "SINGLE"
	BenchDivision BenchType = "DIVISION"
)

// CourtRecord is one courtroom's current occupant as of a single fetch.
// Records are immutable once produced; a new fetch produces a new set.
//
// CaseNumber is non-empty iff Status is IN_SESSION or RECESS. A SITTING_OVER
// record carries no case number and never counts toward any queue.
type CourtRecord struct {
	CourtID       string     `json:"court_id"`
	CourtNumber   string     `json:"court_number"`
	JudgeName     string     `json:"judge_name"`
	Bench         BenchType  `json:"bench_type"`
	IsLive        bool       `json:"is_live"`
	CaseNumber    string     `json:"case_number,omitempty"`
	Status        CaseStatus `json:"status"`
	QueuePosition *int       `json:"queue_position,omitempty"`
	StreamURL     string     `json:"stream_url,omitempty"`
	ScrapedAt     time.Time  `json:"scraped_at"`
}

// IsActive reports whether the courtroom is doing anything worth watching.
func (r *CourtRecord) IsActive() bool {
	return r.IsLive || r.Status == StatusInSession || r.Status == StatusRecess
}

// Pending reports whether the record still waits to be heard. Served
// (IN_SESSION) and finished (SITTING_OVER) records are not pending.
func (r *CourtRecord) Pending() bool {
	return r.Status != StatusInSession && r.Status != StatusSittingOver
}

// Snapshot is one fetch cycle's full set of normalized court records,
// ordered by ascending numeric court number (non-numeric sorts last).
// Transient: created and destroyed within one polling cycle.
type Snapshot struct {
	ScrapedAt time.Time     `json:"scraped_at"`
	Courts    []CourtRecord `json:"courts"`
}

// ActiveCourts counts records with a live stream or a case before the bench.
func (s *Snapshot) ActiveCourts() int {
	n := 0
	for i := range s.Courts {
		if s.Courts[i].IsActive() {
			n++
		}
	}
	return n
}

// RawRow is the coerced form of one loosely-typed board row. Fields may be
// empty or the "-" placeholder; the normalizer validates once at its
// boundary so nothing downstream sees untyped data.
type RawRow struct {
	CourtID     string
	CourtNumber string
	CaseInfo    string
	Serial      string
}
