package catalog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/localpulse/pulse/pkg/events"
)

// Option is a function that configures a Store instance.
type Option func(*Store)

// WithSeed initializes the collection with the given events, preserving
// their order. Seed records keep whatever editorial rating they carry.
func WithSeed(seed []events.Event) Option {
	return func(s *Store) {
		s.events = events.NewEvents(events.WithEventsSeed(seed))
	}
}

// WithCities supplies the fixed city facet list.
func WithCities(cities []events.City) Option {
	return func(s *Store) {
		s.cities = make([]events.City, len(cities))
		copy(s.cities, cities)
	}
}

// WithLogger sets the logger used for mutation and broadcast logging.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDFunc overrides id generation, mainly for deterministic tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock overrides the comment timestamp clock, mainly for tests.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		s.now = fn
	}
}
