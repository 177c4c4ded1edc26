package catalog

import (
	"math"

	"github.com/localpulse/pulse/pkg/events"
)

// AggregateRating recomputes an event's displayed rating from its comment
// list. With no comments the existing (editorial/seed) rating is returned
// unchanged; otherwise the result is the arithmetic mean of all comment
// ratings, rounded half-up to one decimal place. Pure and deterministic.
func AggregateRating(existing float64, comments []events.Comment) float64 {
	if len(comments) == 0 {
		return existing
	}

	sum := 0
	for _, c := range comments {
		sum += c.Rating
	}
	mean := float64(sum) / float64(len(comments))

	return math.Floor(mean*10+0.5) / 10
}
