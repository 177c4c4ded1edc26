package pulse

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/localpulse/pulse/pkg/config"
	"github.com/localpulse/pulse/pkg/events"
)

// Option is a function that configures a Pulse instance.
type Option func(*options)

// options collects construction settings before the store and index exist.
type options struct {
	seed      []events.Event
	seedSet   bool
	cities    []events.City
	citiesSet bool

	logger *zerolog.Logger
	clock  func() time.Time
	idFunc func() string

	cfg              *config.Config
	cfgErr           error
	suggestLimit     int
	suggestTolerance float64
}

func defaultOptions() *options {
	return &options{
		clock:            time.Now,
		suggestLimit:     config.DefaultSuggestLimit,
		suggestTolerance: config.DefaultSuggestTolerance,
	}
}

// WithSeed replaces the embedded seed catalog with the given events.
// Passing nil starts the catalog empty.
func WithSeed(seed []events.Event) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithCities replaces the embedded city facet list.
func WithCities(cities []events.City) Option {
	return func(o *options) {
		o.cities = cities
		o.citiesSet = true
	}
}

// WithLogger sets the logger used for mutation and broadcast logging.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the clock used for date filtering and comment
// timestamps, mainly for deterministic tests.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.clock = fn
		}
	}
}

// WithIDFunc overrides id generation, mainly for deterministic tests.
func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		o.idFunc = fn
	}
}

// WithConfig applies environment-derived settings: suggestion tuning plus
// log level and format. An explicit WithLogger wins over the config-derived
// logger; later tuning options override individual values.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		o.cfg = cfg
		if cfg.SuggestLimit > 0 {
			o.suggestLimit = cfg.SuggestLimit
		}
		if cfg.SuggestTolerance > 0 {
			o.suggestTolerance = cfg.SuggestTolerance
		}
	}
}

// WithEnvConfig loads configuration from the environment and applies it,
// equivalent to WithConfig(config.Load()). Load failures are deferred to
// New, which reports them.
func WithEnvConfig() Option {
	return func(o *options) {
		cfg, err := config.Load()
		if err != nil {
			o.cfgErr = err
			return
		}
		WithConfig(cfg)(o)
	}
}

// WithSuggestLimit caps how many suggestions a query returns.
func WithSuggestLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.suggestLimit = limit
		}
	}
}

// WithSuggestTolerance sets the fuzzy-match tolerance as a fraction of
// query length.
func WithSuggestTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.suggestTolerance = tolerance
		}
	}
}
