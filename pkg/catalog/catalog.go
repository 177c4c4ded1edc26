// Package catalog owns the canonical mutable collection of event records.
// It is the single source of truth: every view reads disposable snapshots
// from it, and every mutation goes through it so that validation, rating
// aggregation, and change notification can never be bypassed.
//
// Example usage:
//
//	store := catalog.New(catalog.WithSeed(seed))
//	sub := store.Subscribe(func() { render(store.List()) })
//	defer store.Unsubscribe(sub)
//
//	ev, err := store.Create("user-42", draft)
package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/localpulse/pulse/pkg/errors"
	"github.com/localpulse/pulse/pkg/events"
	"github.com/localpulse/pulse/pkg/logging"
)

// AnonymousAuthor is the display name used when a comment draft carries no
// author name.
const AnonymousAuthor = "Anonymous"

// Store is the canonical event collection. All mutating operations validate
// fully before touching the collection and broadcast only after the mutation
// is complete, so no subscriber can ever observe a partial write.
type Store struct {
	events   *events.Events
	notifier *Notifier
	cities   []events.City
	logger   *zerolog.Logger
	newID    func() string
	now      func() time.Time
}

// New creates a store with the given options. Without options the store
// starts empty, generates UUIDs, and uses the wall clock.
func New(opts ...Option) *Store {
	s := &Store{
		events: events.NewEvents(),
		logger: logging.Default(),
		newID:  uuid.NewString,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.notifier = NewNotifier(s.logger)
	return s
}

// List returns the full current snapshot in store order,
// most-recently-created-first. It never fails and never broadcasts.
func (s *Store) List() []events.Event {
	return s.events.List()
}

// Get returns a single event by id.
func (s *Store) Get(id string) (events.Event, error) {
	ev, ok := s.events.Get(id)
	if !ok {
		return events.Event{}, errors.NewNotFoundError("event", id)
	}
	return ev, nil
}

// Create validates the draft, assigns a fresh id, stamps the organizer
// identity, and prepends the new record so it surfaces immediately. On
// validation failure the collection is left unchanged.
func (s *Store) Create(organizerID string, draft events.EventDraft) (events.Event, error) {
	draft = draft.Normalized()
	if err := draft.Validate(); err != nil {
		return events.Event{}, err
	}

	ev := events.FromDraft(s.newID(), organizerID, draft)
	s.events.Prepend(ev)

	s.logger.Info().
		Str("event_id", ev.ID).
		Str("organizer_id", organizerID).
		Msg("Event created")

	s.notifier.broadcast()
	return ev, nil
}

// Update merges the draft over the existing record (empty draft fields
// inherit current values), validates the merged result, and replaces the
// record in place, preserving its position in the order.
func (s *Store) Update(id string, draft events.EventDraft) (events.Event, error) {
	existing, ok := s.events.Get(id)
	if !ok {
		return events.Event{}, errors.NewNotFoundError("event", id)
	}

	merged := draft.MergeOver(existing)
	if err := merged.Validate(); err != nil {
		return events.Event{}, err
	}

	updated := existing.ApplyDraft(merged)
	s.events.Replace(updated)

	s.logger.Info().
		Str("event_id", id).
		Msg("Event updated")

	s.notifier.broadcast()
	return updated, nil
}

// FindByOrganizer returns all events with the exact organizer id, in store
// order. Always recomputed from the current snapshot.
func (s *Store) FindByOrganizer(organizerID string) []events.Event {
	var out []events.Event
	for _, ev := range s.events.List() {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out
}

// AppendComment appends a validated comment to the event's comment list
// (insertion order, never reordered), recomputes the displayed rating, and
// replaces the record.
func (s *Store) AppendComment(eventID string, draft events.CommentDraft) (events.Event, error) {
	draft = draft.Normalized()
	if err := draft.Validate(); err != nil {
		return events.Event{}, err
	}

	existing, ok := s.events.Get(eventID)
	if !ok {
		return events.Event{}, errors.NewNotFoundError("event", eventID)
	}

	author := draft.AuthorName
	if author == "" {
		author = AnonymousAuthor
	}

	existing.Comments = append(existing.Comments, events.Comment{
		ID:             s.newID(),
		AuthorName:     author,
		AuthorImageURL: draft.AuthorImageURL,
		Rating:         draft.Rating,
		Text:           draft.Text,
		SubmittedAt:    s.now(),
	})
	existing.Rating = AggregateRating(existing.Rating, existing.Comments)
	s.events.Replace(existing)

	s.logger.Info().
		Str("event_id", eventID).
		Int("comment_rating", draft.Rating).
		Float64("event_rating", existing.Rating).
		Msg("Comment appended")

	s.notifier.broadcast()
	return existing, nil
}

// Categories returns the distinct category labels present in the catalog,
// de-duplicated case-insensitively (first-seen label wins) and sorted. The
// UI derives its chip list from this rather than a closed enum.
func (s *Store) Categories() []string {
	folder := cases.Fold()
	seen := make(map[string]bool)
	var out []string

	for _, ev := range s.events.List() {
		if ev.Category == "" {
			continue
		}
		key := folder.String(ev.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev.Category)
	}

	sort.Strings(out)
	return out
}

// Cities returns the fixed city facet list supplied at construction.
func (s *Store) Cities() []events.City {
	out := make([]events.City, len(s.cities))
	copy(out, s.cities)
	return out
}

// Subscribe registers a handler called after every successful mutation.
// Handlers receive no payload; they re-read the store themselves.
func (s *Store) Subscribe(fn Handler) *Subscription {
	return s.notifier.Subscribe(fn)
}

// Unsubscribe removes a previously registered handler.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.notifier.Unsubscribe(sub)
}

// Len returns the number of events in the catalog.
func (s *Store) Len() int {
	return s.events.Len()
}
