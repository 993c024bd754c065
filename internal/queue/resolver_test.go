package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

func pending(court, caseNumber string, serial *int) feed.CourtRecord {
	return feed.CourtRecord{
		CourtID:       court,
		CaseNumber:    caseNumber,
		Status:        feed.StatusRecess,
		QueuePosition: serial,
	}
}

func intPtr(n int) *int { return &n }

func TestResolve_SerialRanking(t *testing.T) {
	courts := []feed.CourtRecord{
		pending("5", "A", intPtr(10)),
		pending("5", "B", intPtr(12)),
		pending("5", "C", intPtr(15)),
	}

	pos, ok := Resolve("B", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	pos, ok = Resolve("A", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	pos, ok = Resolve("C", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
}

func TestResolve_SerialRankingIgnoresOtherCourtsAndStatuses(t *testing.T) {
	courts := []feed.CourtRecord{
		{CourtID: "5", CaseNumber: "HEARD", Status: feed.StatusInSession, QueuePosition: intPtr(1)},
		{CourtID: "5", CaseNumber: "DONE", Status: feed.StatusSittingOver, QueuePosition: intPtr(2)},
		pending("5", "B", intPtr(12)),
		pending("9", "A", intPtr(3)),
	}

	pos, ok := Resolve("B", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestResolve_OrdinalFallbackWithoutSerial(t *testing.T) {
	courts := []feed.CourtRecord{
		pending("5", "A", nil),
		pending("5", "B", nil),
		pending("5", "C", nil),
	}

	pos, ok := Resolve("C", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
}

func TestResolve_SerialGapsStillRankCorrectly(t *testing.T) {
	// Peers without serials do not count against a serial-ranked target.
	courts := []feed.CourtRecord{
		pending("5", "A", intPtr(40)),
		pending("5", "B", nil),
		pending("5", "C", intPtr(7)),
	}

	pos, ok := Resolve("A", "5", courts)
	require.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestResolve_CaseComparisonIsLenient(t *testing.T) {
	courts := []feed.CourtRecord{pending("5", "  w.p. 1234/2024 ", intPtr(4))}

	_, ok := Resolve("W.P. 1234/2024", "5", courts)
	assert.True(t, ok)
}

func TestResolve_NotFound(t *testing.T) {
	courts := []feed.CourtRecord{
		pending("5", "A", intPtr(10)),
		{CourtID: "5", CaseNumber: "B", Status: feed.StatusInSession},
	}

	_, ok := Resolve("B", "5", courts) // before the bench, not pending
	assert.False(t, ok)

	_, ok = Resolve("A", "9", courts) // wrong court
	assert.False(t, ok)

	_, ok = Resolve("Z", "5", courts) // unknown case
	assert.False(t, ok)
}

func TestResolve_Deterministic(t *testing.T) {
	courts := []feed.CourtRecord{
		pending("5", "A", intPtr(10)),
		pending("5", "B", intPtr(12)),
	}

	first, ok := Resolve("B", "5", courts)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := Resolve("B", "5", courts)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}
