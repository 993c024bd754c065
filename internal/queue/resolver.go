// Package queue ranks a pending case within its courtroom's waiting list.
package queue

import (
	"strings"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

// Resolve returns the 1-based queue position of caseNumber within courtID.
// Position 1 means next to be heard. Records already before the bench
// (IN_SESSION) or finished for the day (SITTING_OVER) do not count.
//
// Two ranking modes: if the target carries a queue serial, the position is
// one plus the number of other pending records in the court with a strictly
// smaller serial. Without a serial the court's feed order decides.
//
// Returns ok=false when the case is not found pending in that court. The
// result depends only on the snapshot contents, so re-resolving against an
// unchanged snapshot always yields the same position.
func Resolve(caseNumber, courtID string, courts []feed.CourtRecord) (int, bool) {
	pending := make([]feed.CourtRecord, 0, len(courts))
	for _, r := range courts {
		if r.CourtID == courtID && r.Pending() {
			pending = append(pending, r)
		}
	}

	targetIdx := -1
	for i, r := range pending {
		if sameCase(r.CaseNumber, caseNumber) {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return 0, false
	}

	target := pending[targetIdx]
	if target.QueuePosition != nil {
		pos := 1
		for i, r := range pending {
			if i == targetIdx || r.QueuePosition == nil {
				continue
			}
			if *r.QueuePosition < *target.QueuePosition {
				pos++
			}
		}
		return pos, true
	}

	// Ordinal fallback: rank by feed order among pending records.
	return targetIdx + 1, true
}

func sameCase(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
