// Package events defines the entity model for the pulse catalog: Event,
// Comment, and City records, the ordered concurrent-safe Events collection
// that backs the catalog store, and the draft types used for validated
// create/update/comment payloads.
package events

import (
	"time"
)

// OrganizerSystem is the organizer identity stamped on system-seeded records.
const OrganizerSystem = "system"

// Event is a single advertised happening.
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// Category is a free-form label, not a closed enum. The UI derives its
	// category list dynamically from whatever values are present in the data.
	Category      string `json:"category" yaml:"category"`
	OrganizerName string `json:"organizer_name,omitempty" yaml:"organizer_name,omitempty"`
	OrganizerID   string `json:"organizer_id" yaml:"organizer_id"`

	// Date is the calendar date (time-of-day zeroed, UTC); Time is the
	// display time-of-day string, e.g. "19:30".
	Date         time.Time `json:"date" yaml:"date"`
	Time         string    `json:"time" yaml:"time"`
	DurationText string    `json:"duration_text,omitempty" yaml:"duration_text,omitempty"`

	City        string `json:"city" yaml:"city"`
	VenueName   string `json:"venue_name" yaml:"venue_name"`
	FullAddress string `json:"full_address,omitempty" yaml:"full_address,omitempty"`
	MapURL      string `json:"map_url,omitempty" yaml:"map_url,omitempty"`

	Price             string `json:"price,omitempty" yaml:"price,omitempty"`
	AgeGroup          string `json:"age_group,omitempty" yaml:"age_group,omitempty"`
	RegistrationURL   string `json:"registration_url,omitempty" yaml:"registration_url,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
	AccessibilityNote string `json:"accessibility_note,omitempty" yaml:"accessibility_note,omitempty"`

	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// Rating is the displayed rating in [0,5] with one decimal place. Once
	// Comments is non-empty it equals the rounded mean of all comment
	// ratings; before that it is the editorial/seed rating.
	Rating   float64   `json:"rating" yaml:"rating"`
	Comments []Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Comment is one user's review of an event. Comments keep insertion order
// and are never reordered by rating or date.
type Comment struct {
	ID             string    `json:"id" yaml:"id"`
	AuthorName     string    `json:"author_name" yaml:"author_name"`
	AuthorImageURL string    `json:"author_image_url,omitempty" yaml:"author_image_url,omitempty"`
	Rating         int       `json:"rating" yaml:"rating"`
	Text           string    `json:"text" yaml:"text"`
	SubmittedAt    time.Time `json:"submitted_at" yaml:"submitted_at"`
}

// City is a facet key plus display label. The city list is fixed, small,
// externally supplied, and never mutated at runtime.
type City struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// HasRating reports whether the event carries a usable rating.
func (e Event) HasRating() bool {
	return e.Rating > 0
}

// Clone returns a deep copy of the event so callers can never alias
// store-owned comment slices.
func (e Event) Clone() Event {
	out := e
	if e.Comments != nil {
		out.Comments = make([]Comment, len(e.Comments))
		copy(out.Comments, e.Comments)
	}
	return out
}

// ApplyDraft returns a copy of e with all descriptive fields replaced by the
// draft's values. Identity, organizer, rating, and comments always carry over.
func (e Event) ApplyDraft(d EventDraft) Event {
	out := e.Clone()
	out.Name = d.Name
	out.Description = d.Description
	out.Category = d.Category
	out.OrganizerName = d.OrganizerName
	out.Date = d.Date
	out.Time = d.Time
	out.DurationText = d.DurationText
	out.City = d.City
	out.VenueName = d.VenueName
	out.FullAddress = d.FullAddress
	out.MapURL = d.MapURL
	out.Price = d.Price
	out.AgeGroup = d.AgeGroup
	out.RegistrationURL = d.RegistrationURL
	out.ContactEmail = d.ContactEmail
	out.AccessibilityNote = d.AccessibilityNote
	out.ImageURL = d.ImageURL
	return out
}

// FromDraft builds a fresh event from a validated draft. The rating starts
// at zero; it becomes meaningful once comments arrive.
func FromDraft(id, organizerID string, d EventDraft) Event {
	ev := Event{ID: id, OrganizerID: organizerID}
	return ev.ApplyDraft(d)
}
