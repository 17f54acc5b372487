package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrHubClosed = errors.New("notification hub is closed")

// Notifier receives round events.
type Notifier interface {
	Notify(ctx context.Context, event entity.Event) error
}

// Hub fans events out to in-process subscribers.
// Delivery never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	subs    map[int]chan entity.Event
	nextID  int
	dropped uint64
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan entity.Event),
	}
}

// Subscribe - registers a subscriber. The returned func unsubscribes and closes the channel.
func (that *Hub) Subscribe(buffer int) (<-chan entity.Event, func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	ch := make(chan entity.Event, buffer)
	if that.closed {
		close(ch)
		return ch, func() {}
	}

	id := that.nextID
	that.nextID++
	that.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			that.mu.Lock()
			defer that.mu.Unlock()

			if sub, ok := that.subs[id]; ok {
				delete(that.subs, id)
				close(sub)
			}
		})
	}
}

func (that *Hub) Notify(ctx context.Context, event entity.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return ErrHubClosed
	}

	for _, ch := range that.subs {
		select {
		case ch <- event:
		default:
			that.dropped++
		}
	}

	return nil
}

// Dropped - returns how many deliveries were skipped because a subscriber was full.
func (that *Hub) Dropped() uint64 {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.dropped
}

func (that *Hub) Subscribers() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.subs)
}

// Close - closes every subscriber channel. Safe to call more than once.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	for id, ch := range that.subs {
		delete(that.subs, id)
		close(ch)
	}
}

type multi []Notifier

// Multi - combines notifiers; every notifier is called and the errors are joined.
func Multi(notifiers ...Notifier) Notifier {
	list := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}

	return list
}

func (that multi) Notify(ctx context.Context, event entity.Event) error {
	var errs []error
	for _, n := range that {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
