package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPublishFailed = errors.New("publish failed")

type failingNotifier struct {
	calls int
}

func (that *failingNotifier) Notify(_ context.Context, _ entity.Event) error {
	that.calls++
	return errPublishFailed
}

func TestHub_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivers to every subscriber", func(t *testing.T) {
		// Given: a hub with two subscribers
		hub := NewHub()
		first, unsubFirst := hub.Subscribe(1)
		second, unsubSecond := hub.Subscribe(1)
		t.Cleanup(unsubFirst)
		t.Cleanup(unsubSecond)

		event := entity.Event{RoundID: "r1", Type: entity.EventMove}

		// When: an event is published
		err := hub.Notify(ctx, event)

		// Then: both subscribers receive it
		require.NoError(t, err)
		assert.Equal(t, event, <-first)
		assert.Equal(t, event, <-second)
	})

	t.Run("Full subscriber drops events without blocking", func(t *testing.T) {
		// Given: a subscriber with a buffer of one
		hub := NewHub()
		ch, unsub := hub.Subscribe(1)
		t.Cleanup(unsub)

		// When: two events are published
		require.NoError(t, hub.Notify(ctx, entity.Event{Type: entity.EventMove}))
		require.NoError(t, hub.Notify(ctx, entity.Event{Type: entity.EventTurn}))

		// Then: the first one is kept and the second one is counted as dropped
		assert.Equal(t, entity.EventMove, (<-ch).Type)
		assert.Equal(t, uint64(1), hub.Dropped())
	})

	t.Run("Canceled context is returned", func(t *testing.T) {
		hub := NewHub()
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := hub.Notify(canceled, entity.Event{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHub_Subscribe(t *testing.T) {
	t.Run("Unsubscribe closes the channel once", func(t *testing.T) {
		// Given: a subscriber
		hub := NewHub()
		ch, unsub := hub.Subscribe(0)
		require.Equal(t, 1, hub.Subscribers())

		// When: unsubscribing twice
		unsub()
		unsub()

		// Then: the channel is closed and the hub forgets it
		_, open := <-ch
		assert.False(t, open)
		assert.Equal(t, 0, hub.Subscribers())
	})

	t.Run("Subscribing to a closed hub returns a closed channel", func(t *testing.T) {
		hub := NewHub()
		hub.Close()

		ch, unsub := hub.Subscribe(1)
		unsub()

		_, open := <-ch
		assert.False(t, open)
	})
}

func TestHub_Close(t *testing.T) {
	// Given: a hub with a subscriber
	hub := NewHub()
	ch, unsub := hub.Subscribe(1)

	// When: closing the hub twice
	hub.Close()
	hub.Close()

	// Then: the subscriber channel is closed and later notifications fail
	_, open := <-ch
	assert.False(t, open)
	assert.ErrorIs(t, hub.Notify(context.Background(), entity.Event{}), ErrHubClosed)

	// And: a late unsubscribe does not panic
	assert.NotPanics(t, unsub)
}

func TestMulti(t *testing.T) {
	ctx := context.Background()

	t.Run("Calls every notifier and joins errors", func(t *testing.T) {
		// Given: a hub and a failing notifier combined
		hub := NewHub()
		ch, unsub := hub.Subscribe(1)
		t.Cleanup(unsub)
		failing := &failingNotifier{}
		notifier := Multi(failing, hub, nil)

		// When: notifying
		err := notifier.Notify(ctx, entity.Event{Type: entity.EventReset})

		// Then: the hub still got the event and the failure is reported
		require.ErrorIs(t, err, errPublishFailed)
		assert.Equal(t, 1, failing.calls)
		assert.Equal(t, entity.EventReset, (<-ch).Type)
	})

	t.Run("Empty multi is a no-op", func(t *testing.T) {
		assert.NoError(t, Multi().Notify(ctx, entity.Event{}))
	})
}
