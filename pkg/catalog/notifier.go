package catalog

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler is called after a successful catalog mutation. Handlers receive no
// payload by design: they re-read the store, so two independent views can
// never disagree about the current state of a record. Handlers must be
// idempotent and must not trigger further mutations synchronously.
type Handler func()

// Subscription is an opaque handle returned by Subscribe.
type Subscription struct {
	id int
}

type subscriberEntry struct {
	id int
	fn Handler
}

// Notifier fans out payload-less change signals to any number of
// subscribers, in subscription order, synchronously.
type Notifier struct {
	mu           sync.Mutex
	nextID       int
	subscribers  []subscriberEntry
	broadcasting bool
	logger       *zerolog.Logger
}

// NewNotifier creates a new notifier.
func NewNotifier(logger *zerolog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Subscribe registers a handler and returns its handle.
func (n *Notifier) Subscribe(fn Handler) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.subscribers = append(n.subscribers, subscriberEntry{id: n.nextID, fn: fn})
	return &Subscription{id: n.nextID}
}

// Unsubscribe removes the handler for the given handle. Unknown or stale
// handles are a no-op.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for i, entry := range n.subscribers {
		if entry.id == sub.id {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (n *Notifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subscribers)
}

// broadcast invokes every subscribed handler. A nested broadcast fired while
// delivery is in progress is suppressed and logged as a developer warning:
// a handler mutating the store synchronously would otherwise loop forever.
func (n *Notifier) broadcast() {
	n.mu.Lock()
	if n.broadcasting {
		n.mu.Unlock()
		n.logger.Warn().Msg("Nested broadcast suppressed; handlers must not mutate the catalog synchronously")
		return
	}
	n.broadcasting = true
	handlers := make([]subscriberEntry, len(n.subscribers))
	copy(handlers, n.subscribers)
	n.mu.Unlock()

	// Reset under defer so a panicking handler cannot wedge the guard and
	// suppress every later broadcast.
	defer func() {
		n.mu.Lock()
		n.broadcasting = false
		n.mu.Unlock()
	}()

	for _, entry := range handlers {
		entry.fn()
	}
}
