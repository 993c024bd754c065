package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

var cycleTime = time.Date(2026, 8, 14, 11, 0, 0, 0, time.UTC)

func boardWith(records ...feed.CourtRecord) *feed.Snapshot {
	return &feed.Snapshot{ScrapedAt: cycleTime, Courts: records}
}

func queued(court, caseNumber string, serial int) feed.CourtRecord {
	return feed.CourtRecord{
		CourtID:       court,
		CourtNumber:   court,
		CaseNumber:    caseNumber,
		Status:        feed.StatusRecess,
		QueuePosition: intPtr(serial),
	}
}

func watching(identifier string, last Progress) Subscription {
	return Subscription{
		ID:             "sub-1",
		OwnerID:        "owner-1",
		CaseIdentifier: identifier,
		Flags:          DefaultFlags(),
		LastSent:       last,
		Active:         true,
	}
}

func TestDecide_EarlyWarning(t *testing.T) {
	snap := boardWith(
		queued("5", "A", 1),
		queued("5", "B", 2),
		queued("5", "TARGET", 3),
	)
	sub := watching("TARGET", ProgressNone)

	d := Decide(sub, snap, cycleTime, DefaultEarlyWarningThreshold)
	require.True(t, d.Changed)
	assert.Equal(t, ProgressEarlyWarning, d.Progress)
	require.NotNil(t, d.Alert)
	assert.Equal(t, AlertEarlyWarning, d.Alert.Type)
	assert.Equal(t, 3, d.Alert.Position)
	assert.Equal(t, "TARGET", d.Alert.CaseNumber)
	require.NotNil(t, d.Alert.Court)
	assert.Equal(t, "5", d.Alert.Court.CourtID)
}

func TestDecide_EarlyWarningDoesNotRepeat(t *testing.T) {
	snap := boardWith(queued("5", "A", 1), queued("5", "TARGET", 3))

	sub := watching("TARGET", ProgressEarlyWarning)
	d := Decide(sub, snap, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)
	assert.Nil(t, d.Alert)
	assert.Equal(t, ProgressEarlyWarning, d.Progress)
}

func TestDecide_EarlyWarningExcludesPositionOne(t *testing.T) {
	// Position 1 belongs to the approaching alert, not early warning.
	snap := boardWith(queued("5", "TARGET", 3))

	d := Decide(watching("TARGET", ProgressNone), snap, cycleTime, DefaultEarlyWarningThreshold)
	require.NotNil(t, d.Alert)
	assert.Equal(t, AlertApproaching, d.Alert.Type)
	assert.Equal(t, 1, d.Alert.Position)
}

func TestDecide_EarlyWarningRespectsThreshold(t *testing.T) {
	snap := boardWith(
		queued("5", "A", 1),
		queued("5", "B", 2),
		queued("5", "TARGET", 6),
	)

	d := Decide(watching("TARGET", ProgressNone), snap, cycleTime, 2)
	assert.False(t, d.Changed)

	d = Decide(watching("TARGET", ProgressNone), snap, cycleTime, 3)
	require.NotNil(t, d.Alert)
	assert.Equal(t, AlertEarlyWarning, d.Alert.Type)
	assert.Equal(t, 3, d.Alert.Position)
}

func TestDecide_Approaching(t *testing.T) {
	snap := boardWith(
		queued("5", "TARGET", 4),
		queued("5", "B", 9),
	)

	for _, last := range []Progress{ProgressNone, ProgressEarlyWarning, ProgressCompleted} {
		d := Decide(watching("TARGET", last), snap, cycleTime, DefaultEarlyWarningThreshold)
		require.True(t, d.Changed, "last=%s", last)
		require.NotNil(t, d.Alert, "last=%s", last)
		assert.Equal(t, AlertApproaching, d.Alert.Type)
		assert.Equal(t, ProgressApproaching, d.Progress)
	}

	d := Decide(watching("TARGET", ProgressApproaching), snap, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)
}

func TestDecide_InSessionRepeatInterval(t *testing.T) {
	snap := boardWith(feed.CourtRecord{
		CourtID: "5", CourtNumber: "5", CaseNumber: "TARGET", Status: feed.StatusInSession,
	})

	first := Decide(watching("TARGET", ProgressApproaching), snap, cycleTime, DefaultEarlyWarningThreshold)
	require.NotNil(t, first.Alert)
	assert.Equal(t, AlertInSession, first.Alert.Type)
	assert.Equal(t, ProgressInSession, first.Progress)

	sub := watching("TARGET", ProgressInSession)
	sentAt := cycleTime.Add(-2 * time.Minute)
	sub.LastSentAt = &sentAt

	within := Decide(sub, snap, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, within.Changed)
	assert.Nil(t, within.Alert)

	sentAt = cycleTime.Add(-6 * time.Minute)
	repeat := Decide(sub, snap, cycleTime, DefaultEarlyWarningThreshold)
	require.True(t, repeat.Changed)
	require.NotNil(t, repeat.Alert)
	assert.Equal(t, AlertInSession, repeat.Alert.Type)
}

func TestDecide_InSessionSuppressesQueueAlerts(t *testing.T) {
	// A case before the bench never yields early warning or approaching,
	// even from a fresh subscription.
	snap := boardWith(feed.CourtRecord{
		CourtID: "5", CaseNumber: "TARGET", Status: feed.StatusInSession, QueuePosition: intPtr(1),
	})

	d := Decide(watching("TARGET", ProgressNone), snap, cycleTime, DefaultEarlyWarningThreshold)
	require.NotNil(t, d.Alert)
	assert.Equal(t, AlertInSession, d.Alert.Type)
}

func TestDecide_CompletedOnDisappearance(t *testing.T) {
	empty := boardWith()

	for _, last := range []Progress{ProgressInSession, ProgressApproaching} {
		d := Decide(watching("TARGET", last), empty, cycleTime, DefaultEarlyWarningThreshold)
		require.True(t, d.Changed, "last=%s", last)
		require.NotNil(t, d.Alert, "last=%s", last)
		assert.Equal(t, AlertCompleted, d.Alert.Type)
		assert.Equal(t, ProgressCompleted, d.Progress)
		assert.Nil(t, d.Alert.Court)
	}

	// Disappearing before any hearing activity is not a completion.
	for _, last := range []Progress{ProgressNone, ProgressEarlyWarning, ProgressCompleted} {
		d := Decide(watching("TARGET", last), empty, cycleTime, DefaultEarlyWarningThreshold)
		assert.False(t, d.Changed, "last=%s", last)
		assert.Nil(t, d.Alert, "last=%s", last)
	}
}

func TestDecide_ReappearanceAfterCompletionReArms(t *testing.T) {
	snap := boardWith(queued("5", "A", 1), queued("5", "TARGET", 3))

	d := Decide(watching("TARGET", ProgressCompleted), snap, cycleTime, DefaultEarlyWarningThreshold)
	require.NotNil(t, d.Alert)
	assert.Equal(t, AlertEarlyWarning, d.Alert.Type)
}

func TestDecide_FlagsDisableAlerts(t *testing.T) {
	snap := boardWith(queued("5", "A", 1), queued("5", "TARGET", 3))

	sub := watching("TARGET", ProgressNone)
	sub.Flags.EarlyWarning = false
	d := Decide(sub, snap, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)

	inSession := boardWith(feed.CourtRecord{CourtID: "5", CaseNumber: "TARGET", Status: feed.StatusInSession})
	sub = watching("TARGET", ProgressApproaching)
	sub.Flags.InSession = false
	d = Decide(sub, inSession, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)

	sub = watching("TARGET", ProgressInSession)
	sub.Flags.Completed = false
	d = Decide(sub, boardWith(), cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)
}

func TestDecide_PositionScopedIdentifierWithoutCaseNumber(t *testing.T) {
	// A record matched by queue serial alone can carry no case number; there
	// is nothing to rank or announce yet.
	snap := boardWith(feed.CourtRecord{
		CourtID: "5", Status: feed.StatusUnknown, QueuePosition: intPtr(12),
	})

	d := Decide(watching("5:12", ProgressNone), snap, cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)
	assert.Nil(t, d.Alert)
}

func TestDecide_MalformedIdentifierIsInert(t *testing.T) {
	d := Decide(watching("5:", ProgressNone), boardWith(), cycleTime, DefaultEarlyWarningThreshold)
	assert.False(t, d.Changed)
	assert.Nil(t, d.Alert)
}

// TestDecide_AlertSequenceIsMonotonic walks a case through its whole day and
// checks each alert fires exactly once, in order, with the in-session repeat
// as the only exception.
func TestDecide_AlertSequenceIsMonotonic(t *testing.T) {
	sub := watching("TARGET", ProgressNone)
	now := cycleTime

	boards := []*feed.Snapshot{
		boardWith(queued("5", "A", 1), queued("5", "B", 2), queued("5", "TARGET", 4)),
		boardWith(queued("5", "A", 1), queued("5", "B", 2), queued("5", "TARGET", 4)), // unchanged board
		boardWith(queued("5", "TARGET", 4)),
		boardWith(feed.CourtRecord{CourtID: "5", CaseNumber: "TARGET", Status: feed.StatusInSession}),
		boardWith(feed.CourtRecord{CourtID: "5", CaseNumber: "TARGET", Status: feed.StatusInSession}),
		boardWith(),
		boardWith(),
	}

	var emitted []AlertType
	for _, snap := range boards {
		d := Decide(sub, snap, now, DefaultEarlyWarningThreshold)
		if d.Changed {
			sub.LastSent = d.Progress
			at := d.At
			sub.LastSentAt = &at
		}
		if d.Alert != nil {
			emitted = append(emitted, d.Alert.Type)
		}
		now = now.Add(30 * time.Second)
	}

	assert.Equal(t, []AlertType{
		AlertEarlyWarning,
		AlertApproaching,
		AlertInSession,
		AlertCompleted,
	}, emitted)
}
