// Package filter produces the display subset of a catalog snapshot from the
// current facet selections and free-text query. Filters are independent
// predicates combined with logical AND; application is a pure function of
// (snapshot, filter, reference time) and never mutates or re-sorts.
package filter

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/localpulse/pulse/pkg/events"
)

// DateBucket is a relative time window used as a filter value instead of an
// exact date range.
type DateBucket string

// Date bucket values. The zero value matches everything.
const (
	DateAny       DateBucket = ""
	DateToday     DateBucket = "today"
	DateThisWeek  DateBucket = "this_week"
	DateThisMonth DateBucket = "this_month"
)

// Filter contains all facet selections. The zero value matches everything.
type Filter struct {
	// City is an exact match on the event's city facet key.
	City string

	// CategoryChip and Category both select a category; the chip value takes
	// precedence when both are set, since chip selection is the more recent,
	// more visible user action.
	CategoryChip string
	Category     string

	// Query is a case-insensitive substring tested against name,
	// description, category, and organizer name; any one match suffices.
	Query string

	// Date restricts events to a relative window computed from the
	// reference time passed to Apply.
	Date DateBucket

	// MinRating excludes events rated below the threshold. Events with no
	// usable rating are excluded whenever a threshold is set.
	MinRating int
}

var fold = cases.Fold()

// Apply returns the subset of the snapshot matching all set facets, in the
// snapshot's order. The reference time is explicit so date buckets are
// deterministic under test and never cached across a midnight boundary.
func (f Filter) Apply(snapshot []events.Event, now time.Time) []events.Event {
	var out []events.Event
	for _, ev := range snapshot {
		if f.matches(ev, now) {
			out = append(out, ev)
		}
	}
	return out
}

// matches checks a single event against every facet.
func (f Filter) matches(ev events.Event, now time.Time) bool {
	return f.matchesCity(ev) &&
		f.matchesCategory(ev) &&
		f.matchesQuery(ev) &&
		f.matchesDate(ev, now) &&
		f.matchesRating(ev)
}

func (f Filter) matchesCity(ev events.Event) bool {
	return f.City == "" || ev.City == f.City
}

func (f Filter) matchesCategory(ev events.Event) bool {
	effective := f.CategoryChip
	if effective == "" {
		effective = f.Category
	}
	return effective == "" || strings.EqualFold(ev.Category, effective)
}

func (f Filter) matchesQuery(ev events.Event) bool {
	query := strings.TrimSpace(f.Query)
	if query == "" {
		return true
	}
	needle := fold.String(query)

	for _, field := range []string{ev.Name, ev.Description, ev.Category, ev.OrganizerName} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

func (f Filter) matchesDate(ev events.Event, now time.Time) bool {
	if f.Date == DateAny {
		return true
	}

	today := calendarDay(now)
	eventDate := calendarDay(ev.Date)

	switch f.Date {
	case DateToday:
		return eventDate.Equal(today)
	case DateThisWeek:
		// Week starts on Sunday; both bounds inclusive.
		startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))
		endOfWeek := startOfWeek.AddDate(0, 0, 6)
		return !eventDate.Before(startOfWeek) && !eventDate.After(endOfWeek)
	case DateThisMonth:
		return eventDate.Year() == today.Year() && eventDate.Month() == today.Month()
	default:
		return true
	}
}

func (f Filter) matchesRating(ev events.Event) bool {
	if f.MinRating <= 0 {
		return true
	}
	if !ev.HasRating() {
		return false
	}
	return ev.Rating >= float64(f.MinRating)
}

// calendarDay maps a time to its calendar date as observed in the value's
// own location, re-anchored at UTC midnight. Stored event dates are UTC
// midnights while the reference clock is usually local; anchoring both to
// the same location makes bucket math a pure calendar-date comparison.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
