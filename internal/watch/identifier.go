package watch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

// Identifier is a parsed case reference. Three forms are accepted:
//
//	"W.P. 1234/2024"    bare case number, matched across all courts
//	"5:12"              court 5, queue serial 12
//	"5:W.P. 1234/2024"  court 5, case number scoped to that court
//
// A court scope must be a short token without spaces; anything else is
// treated as part of a bare case number (case numbers may themselves
// contain colons in older registries).
type Identifier struct {
	CourtID    string
	Position   *int
	CaseNumber string
	raw        string
}

// ParseIdentifier validates and splits a raw case identifier.
func ParseIdentifier(s string) (Identifier, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Identifier{}, fmt.Errorf("empty case identifier")
	}

	if court, rest, ok := strings.Cut(raw, ":"); ok && isCourtToken(court) {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return Identifier{}, fmt.Errorf("identifier %q has a court scope but no case reference", raw)
		}
		if n, err := strconv.Atoi(rest); err == nil {
			if n < 0 {
				return Identifier{}, fmt.Errorf("identifier %q has a negative queue position", raw)
			}
			return Identifier{CourtID: strings.TrimSpace(court), Position: &n, raw: raw}, nil
		}
		return Identifier{CourtID: strings.TrimSpace(court), CaseNumber: rest, raw: raw}, nil
	}

	return Identifier{CaseNumber: raw, raw: raw}, nil
}

func isCourtToken(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= 10 && !strings.ContainsAny(s, " \t")
}

// String returns the identifier as originally written.
func (id Identifier) String() string { return id.raw }

// CaseLabel is the best human-readable name for the watched case.
func (id Identifier) CaseLabel() string {
	if id.CaseNumber != "" {
		return id.CaseNumber
	}
	return id.raw
}

// Match locates the identifier's record in a snapshot. Scoped forms match
// within their court first; a court-scoped case number falls back to a plain
// cross-court match when the case has moved courts.
func (id Identifier) Match(courts []feed.CourtRecord) *feed.CourtRecord {
	if id.CourtID != "" && id.Position != nil {
		for i := range courts {
			r := &courts[i]
			if r.CourtID == id.CourtID && r.QueuePosition != nil && *r.QueuePosition == *id.Position {
				return r
			}
		}
		return nil
	}

	if id.CourtID != "" {
		for i := range courts {
			r := &courts[i]
			if r.CourtID == id.CourtID && equalCase(r.CaseNumber, id.CaseNumber) {
				return r
			}
		}
	}

	if id.CaseNumber != "" {
		for i := range courts {
			if equalCase(courts[i].CaseNumber, id.CaseNumber) {
				return &courts[i]
			}
		}
	}
	return nil
}

func equalCase(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
