// Package suggest builds an approximate string-matching index over the
// catalog for "did you mean" style autocomplete. It tolerates typos the
// exact-substring filter engine would miss and never fails: a query that
// matches nothing returns an empty sequence.
package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/localpulse/pulse/pkg/events"
)

const (
	// DefaultLimit caps how many suggestions a query returns.
	DefaultLimit = 5

	// DefaultTolerance is the fraction of the query length allowed as edit
	// distance against a single token. The moderate default tolerates
	// transpositions and missing/extra characters within roughly 40% of
	// the query.
	DefaultTolerance = 0.4

	// minQueryLen is the shortest useful query after trimming; anything
	// shorter returns no suggestions to avoid overwhelming results.
	minQueryLen = 2
)

var fold = cases.Fold()

// entry is one indexed event with its pre-folded match targets.
type entry struct {
	event  events.Event
	fields []string
	tokens []string
}

// Index ranks events by approximate-match score against a partial query.
// Rebuild whenever the catalog snapshot changes; the index goes stale
// otherwise.
type Index struct {
	mu        sync.RWMutex
	limit     int
	tolerance float64
	entries   []entry
}

// Option is a function that configures an Index instance.
type Option func(*Index)

// WithLimit sets the maximum number of suggestions per query.
func WithLimit(limit int) Option {
	return func(ix *Index) {
		if limit > 0 {
			ix.limit = limit
		}
	}
}

// WithTolerance sets the matching tolerance as a fraction of query length.
func WithTolerance(tolerance float64) Option {
	return func(ix *Index) {
		if tolerance > 0 {
			ix.tolerance = tolerance
		}
	}
}

// New creates an empty index with optional configuration.
func New(opts ...Option) *Index {
	ix := &Index{
		limit:     DefaultLimit,
		tolerance: DefaultTolerance,
	}

	for _, opt := range opts {
		opt(ix)
	}

	return ix
}

// Rebuild recomputes the index over name, category, description, city, and
// organizer name for every event in the snapshot. Snapshot order is kept as
// the tie-break order for equally scored suggestions.
func (ix *Index) Rebuild(snapshot []events.Event) {
	entries := make([]entry, 0, len(snapshot))
	for _, ev := range snapshot {
		var fields, tokens []string
		for _, raw := range []string{ev.Name, ev.Category, ev.Description, ev.City, ev.OrganizerName} {
			if raw == "" {
				continue
			}
			folded := fold.String(raw)
			fields = append(fields, folded)
			tokens = append(tokens, strings.Fields(folded)...)
		}
		entries = append(entries, entry{event: ev, fields: fields, tokens: tokens})
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
}

// Suggest returns up to the configured limit of events ranked by
// approximate-match score, best first, ties broken by snapshot order.
// Queries of length <= 1 after trimming return nothing.
func (ix *Index) Suggest(query string) []events.Event {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return nil
	}
	needle := fold.String(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		event events.Event
		score int
	}

	maxDist := ix.maxDistance(needle)
	var matches []scored
	for _, ent := range ix.entries {
		if score, ok := ent.score(needle, maxDist); ok {
			matches = append(matches, scored{event: ent.event, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	if len(matches) > ix.limit {
		matches = matches[:ix.limit]
	}

	out := make([]events.Event, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.event)
	}
	return out
}

// maxDistance converts the tolerance fraction into an absolute edit
// distance budget for the given query, never below one edit.
func (ix *Index) maxDistance(needle string) int {
	dist := int(ix.tolerance * float64(len([]rune(needle))))
	if dist < 1 {
		dist = 1
	}
	return dist
}

// score computes the entry's best approximate-match score for the query;
// lower is better. Two signals feed it: a fuzzy subsequence rank against
// whole fields (missing characters) and a bounded edit distance against
// individual tokens (typos and transpositions).
func (e entry) score(needle string, maxDist int) (int, bool) {
	best := -1

	for _, field := range e.fields {
		if rank := fuzzy.RankMatchNormalizedFold(needle, field); rank >= 0 {
			if best < 0 || rank < best {
				best = rank
			}
		}
	}

	for _, token := range e.tokens {
		if dist := fuzzy.LevenshteinDistance(needle, token); dist <= maxDist {
			if best < 0 || dist < best {
				best = dist
			}
		}
	}

	return best, best >= 0
}
