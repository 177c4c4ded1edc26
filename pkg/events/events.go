package events

import (
	"sync"
)

// Events is a concurrent safe, ordered collection of events. Order is the
// store order: most-recently-created-first, with in-place replacement
// preserving position.
type Events struct {
	mu   sync.RWMutex
	list []Event
}

// EventsOption defines a function that configures an Events instance.
type EventsOption func(*Events)

// WithEventsCapacity sets the initial capacity of the backing slice.
func WithEventsCapacity(capacity int) EventsOption {
	return func(e *Events) {
		e.list = make([]Event, 0, capacity)
	}
}

// WithEventsSeed initializes the collection with existing events in the
// given order.
func WithEventsSeed(seed []Event) EventsOption {
	return func(e *Events) {
		e.list = make([]Event, 0, len(seed))
		for _, ev := range seed {
			e.list = append(e.list, ev.Clone())
		}
	}
}

// NewEvents creates a new Events collection with optional configuration.
func NewEvents(opts ...EventsOption) *Events {
	e := &Events{
		list: make([]Event, 0),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Get returns a deep copy of the event with the given id and whether it exists.
func (e *Events) Get(id string) (Event, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, ev := range e.list {
		if ev.ID == id {
			return ev.Clone(), true
		}
	}
	return Event{}, false
}

// Exists checks if an event exists without returning it.
func (e *Events) Exists(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, ev := range e.list {
		if ev.ID == id {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the event with the given id, or -1.
func (e *Events) IndexOf(id string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i, ev := range e.list {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

// Prepend inserts an event at the front of the collection so the newest
// record surfaces first.
func (e *Events) Prepend(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.list = append([]Event{ev.Clone()}, e.list...)
}

// Replace swaps the stored event with the same id for ev, keeping its
// position in the order. It reports whether the id was present.
func (e *Events) Replace(ev Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, existing := range e.list {
		if existing.ID == ev.ID {
			e.list[i] = ev.Clone()
			return true
		}
	}
	return false
}

// SetAll replaces the whole collection, preserving the given order.
func (e *Events) SetAll(evs []Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.list = make([]Event, 0, len(evs))
	for _, ev := range evs {
		e.list = append(e.list, ev.Clone())
	}
}

// Len returns the number of events.
func (e *Events) Len() int {
	e.mu.RLock()
	length := len(e.list)
	e.mu.RUnlock()
	return length
}

// List returns a deep-copied snapshot of all events in store order.
func (e *Events) List() []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Event, 0, len(e.list))
	for _, ev := range e.list {
		out = append(out, ev.Clone())
	}
	return out
}

// ForEach applies a function to each event in order. The function receives a
// copy. If the function returns false, iteration stops early.
func (e *Events) ForEach(fn func(ev Event) bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, ev := range e.list {
		if !fn(ev.Clone()) {
			break
		}
	}
}

// Clear removes all events.
func (e *Events) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = e.list[:0]
}
