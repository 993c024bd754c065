package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe()
	b, cancelB := hub.Subscribe()
	defer cancelA()
	defer cancelB()

	snap := &feed.Snapshot{ScrapedAt: time.Now()}
	hub.Publish(snap)

	assert.Same(t, snap, <-a)
	assert.Same(t, snap, <-b)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; Publish must return regardless.
	for i := 0; i < subscriberBuffer+3; i++ {
		hub.Publish(&feed.Snapshot{})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, subscriberBuffer, received)
			return
		}
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	assert.Equal(t, 0, hub.Subscribers())

	// The channel is closed; publishing afterwards must not panic.
	_, open := <-ch
	assert.False(t, open)
	hub.Publish(&feed.Snapshot{})

	cancel() // idempotent
}
