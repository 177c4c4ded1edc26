// Package pulse assembles the event catalog core: the canonical store, the
// filter engine, and the fuzzy suggestion index, wired together behind one
// facade. It gates identity-requiring actions and keeps the suggestion index
// fresh by subscribing to the store's change notifier.
package pulse

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/localpulse/pulse/internal/embedded"
	"github.com/localpulse/pulse/pkg/catalog"
	"github.com/localpulse/pulse/pkg/config"
	"github.com/localpulse/pulse/pkg/errors"
	"github.com/localpulse/pulse/pkg/events"
	"github.com/localpulse/pulse/pkg/filter"
	"github.com/localpulse/pulse/pkg/logging"
	"github.com/localpulse/pulse/pkg/suggest"
)

// anonymousUser is the reserved identity for signed-out sessions. It can
// browse but never create events or submit comments.
const anonymousUser = "anonymous"

// Pulse is the application-facing catalog surface.
type Pulse interface {
	// Events returns the full catalog snapshot, most recent first.
	Events() []events.Event

	// Event returns a single event by id.
	Event(id string) (events.Event, error)

	// EventsByOrganizer returns the events created by the given organizer.
	EventsByOrganizer(organizerID string) []events.Event

	// Search applies the filter to the current snapshot at the current time.
	Search(f filter.Filter) []events.Event

	// Suggest returns fuzzy-matched events for a partial query.
	Suggest(query string) []events.Event

	// CreateEvent validates and stores a new event for the given user.
	CreateEvent(userID string, draft events.EventDraft) (events.Event, error)

	// UpdateEvent merges the draft over an existing event.
	UpdateEvent(userID, eventID string, draft events.EventDraft) (events.Event, error)

	// SubmitComment appends a comment and refreshes the event's rating.
	SubmitComment(userID, eventID string, draft events.CommentDraft) (events.Event, error)

	// Subscribe registers a handler called after every catalog mutation.
	Subscribe(fn catalog.Handler) *catalog.Subscription

	// Unsubscribe removes a previously registered handler.
	Unsubscribe(sub *catalog.Subscription)

	// Categories returns the distinct category labels in the catalog.
	Categories() []string

	// Cities returns the fixed city facet list.
	Cities() []events.City
}

// pulse is the internal implementation of the Pulse interface.
type pulse struct {
	store *catalog.Store
	index *suggest.Index
	clock func() time.Time

	// stale flips on every catalog mutation; the next Suggest call
	// rebuilds the index before matching.
	stale atomic.Bool

	sub *catalog.Subscription
}

// New creates a Pulse instance with the given options. Without options it
// loads the embedded seed catalog and uses the wall clock.
func New(opts ...Option) (Pulse, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.cfgErr != nil {
		return nil, o.cfgErr
	}
	if o.cfg != nil && o.logger == nil {
		lg := loggerFromConfig(o.cfg)
		o.logger = &lg
	}

	seed := o.seed
	if !o.seedSet {
		var err error
		if seed, err = embedded.Events(); err != nil {
			return nil, err
		}
	}
	cities := o.cities
	if !o.citiesSet {
		var err error
		if cities, err = embedded.Cities(); err != nil {
			return nil, err
		}
	}

	storeOpts := []catalog.Option{
		catalog.WithSeed(seed),
		catalog.WithCities(cities),
		catalog.WithClock(o.clock),
	}
	if o.logger != nil {
		storeOpts = append(storeOpts, catalog.WithLogger(o.logger))
	}
	if o.idFunc != nil {
		storeOpts = append(storeOpts, catalog.WithIDFunc(o.idFunc))
	}

	p := &pulse{
		store: catalog.New(storeOpts...),
		index: suggest.New(
			suggest.WithLimit(o.suggestLimit),
			suggest.WithTolerance(o.suggestTolerance),
		),
		clock: o.clock,
	}
	p.index.Rebuild(p.store.List())
	p.sub = p.store.Subscribe(func() {
		p.stale.Store(true)
	})

	return p, nil
}

// Events returns the full catalog snapshot, most recent first.
func (p *pulse) Events() []events.Event {
	return p.store.List()
}

// Event returns a single event by id.
func (p *pulse) Event(id string) (events.Event, error) {
	return p.store.Get(id)
}

// EventsByOrganizer returns the events created by the given organizer.
func (p *pulse) EventsByOrganizer(organizerID string) []events.Event {
	return p.store.FindByOrganizer(organizerID)
}

// Search applies the filter to the current snapshot at the current time.
// Results keep store order; an empty filter returns everything.
func (p *pulse) Search(f filter.Filter) []events.Event {
	return f.Apply(p.store.List(), p.clock())
}

// Suggest returns fuzzy-matched events for a partial query, rebuilding the
// index first if the catalog changed since the last call.
func (p *pulse) Suggest(query string) []events.Event {
	if p.stale.Swap(false) {
		p.index.Rebuild(p.store.List())
	}
	return p.index.Suggest(query)
}

// CreateEvent validates and stores a new event for the given user. The
// identity check runs before the store is touched.
func (p *pulse) CreateEvent(userID string, draft events.EventDraft) (events.Event, error) {
	if err := requireIdentity(userID, "create event"); err != nil {
		return events.Event{}, err
	}
	return p.store.Create(userID, draft)
}

// UpdateEvent merges the draft over an existing event.
func (p *pulse) UpdateEvent(userID, eventID string, draft events.EventDraft) (events.Event, error) {
	if err := requireIdentity(userID, "update event"); err != nil {
		return events.Event{}, err
	}
	return p.store.Update(eventID, draft)
}

// SubmitComment appends a comment and refreshes the event's rating.
func (p *pulse) SubmitComment(userID, eventID string, draft events.CommentDraft) (events.Event, error) {
	if err := requireIdentity(userID, "submit comment"); err != nil {
		return events.Event{}, err
	}
	return p.store.AppendComment(eventID, draft)
}

// Subscribe registers a handler called after every catalog mutation.
func (p *pulse) Subscribe(fn catalog.Handler) *catalog.Subscription {
	return p.store.Subscribe(fn)
}

// Unsubscribe removes a previously registered handler.
func (p *pulse) Unsubscribe(sub *catalog.Subscription) {
	p.store.Unsubscribe(sub)
}

// Categories returns the distinct category labels in the catalog.
func (p *pulse) Categories() []string {
	return p.store.Categories()
}

// Cities returns the fixed city facet list.
func (p *pulse) Cities() []events.City {
	return p.store.Cities()
}

// loggerFromConfig builds a logger honoring the configured format and level.
func loggerFromConfig(cfg *config.Config) zerolog.Logger {
	var lg zerolog.Logger
	if cfg.LogFormat == "json" {
		lg = logging.NewJSON(nil)
	} else {
		lg = logging.NewConsole()
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		lg = lg.Level(level)
	}
	return lg
}

// requireIdentity rejects empty and anonymous identities before any
// mutation reaches the store.
func requireIdentity(userID, action string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.EqualFold(userID, anonymousUser) {
		return errors.NewAuthRequiredError(action)
	}
	return nil
}
