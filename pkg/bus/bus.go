// Package bus provides hierarchical publish/subscribe for bot events.
// Event names are dot paths: emitting "message.private.friend" runs the
// handlers of "message.private.friend", then "message.private", then
// "message", collecting every result along the way.
package bus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Handler consumes one emitted payload and may return a result.
type Handler func(ctx context.Context, payload any) (any, error)

// EventBus fans emitted events out to subscribed handlers.
// Thread-safe: subscriptions use a write lock, emissions a read lock.
type EventBus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
	seq  uint64
}

type subscription struct {
	id uint64
	fn Handler
}

// New creates an empty EventBus.
func New() *EventBus {
	return &EventBus{subs: make(map[string][]subscription)}
}

// Subscription identifies one registered handler so it can be cancelled.
type Subscription struct {
	bus   *EventBus
	event string
	id    uint64
}

// Subscribe registers a handler under an event name. Handlers on the same
// name run in registration order.
func (b *EventBus) Subscribe(event string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.subs[event] = append(b.subs[event], subscription{id: b.seq, fn: h})
	return &Subscription{bus: b, event: event, id: b.seq}
}

// Cancel removes the handler from its bus. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	s.bus = nil

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[s.event]
	for i, sub := range subs {
		if sub.id == s.id {
			// Reallocate instead of splicing in place: an emission may
			// still be iterating a snapshot of the old slice.
			b.subs[s.event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[s.event]) == 0 {
		delete(b.subs, s.event)
	}
}

// Emit runs the handlers of event, then of each ancestor up the dot path.
// Handlers run sequentially in registration order within each level; their
// results are collected in execution order. Handler errors do not stop the
// walk: they are wrapped with the level that produced them and joined into
// the returned error. A cancelled context aborts the walk with ctx.Err().
func (b *EventBus) Emit(ctx context.Context, event string, payload any) ([]any, error) {
	var (
		results []any
		errs    []error
	)
	name := event
	for {
		b.mu.RLock()
		handlers := b.subs[name]
		b.mu.RUnlock()

		for _, sub := range handlers {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := sub.fn(ctx, payload)
			if err != nil {
				errs = append(errs, fmt.Errorf("bus: handler for %q: %w", name, err))
				continue
			}
			results = append(results, res)
		}

		i := strings.LastIndex(name, ".")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return results, errors.Join(errs...)
}
