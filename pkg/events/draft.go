package events

import (
	stderrors "errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/localpulse/pulse/pkg/errors"
)

// EventDraft is a create/update payload for an event. Required fields must be
// non-empty after trimming; URL fields must be well-formed absolute URLs.
type EventDraft struct {
	Name              string    `json:"name" validate:"required"`
	Description       string    `json:"description" validate:"required"`
	Category          string    `json:"category" validate:"required"`
	OrganizerName     string    `json:"organizer_name"`
	Date              time.Time `json:"date" validate:"required"`
	Time              string    `json:"time" validate:"required"`
	DurationText      string    `json:"duration_text"`
	City              string    `json:"city" validate:"required"`
	VenueName         string    `json:"venue_name" validate:"required"`
	FullAddress       string    `json:"full_address"`
	MapURL            string    `json:"map_url" validate:"omitempty,url"`
	Price             string    `json:"price" validate:"required"`
	AgeGroup          string    `json:"age_group" validate:"required"`
	RegistrationURL   string    `json:"registration_url" validate:"required,url"`
	ContactEmail      string    `json:"contact_email" validate:"omitempty,email"`
	AccessibilityNote string    `json:"accessibility_note"`
	ImageURL          string    `json:"image_url" validate:"omitempty,url"`
}

// CommentDraft is a comment submission payload. AuthorName may be empty; the
// store falls back to an anonymous display name.
type CommentDraft struct {
	AuthorName     string `json:"author_name"`
	AuthorImageURL string `json:"author_image_url" validate:"omitempty,url"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Text           string `json:"text" validate:"required"`
}

var validate = newValidator()

// newValidator builds the shared validator with JSON tag names so
// ValidationError.Field matches the wire-level field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalized returns a copy of the draft with all string fields trimmed, so
// whitespace-only input fails the required checks.
func (d EventDraft) Normalized() EventDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.OrganizerName = strings.TrimSpace(d.OrganizerName)
	d.Time = strings.TrimSpace(d.Time)
	d.DurationText = strings.TrimSpace(d.DurationText)
	d.City = strings.TrimSpace(d.City)
	d.VenueName = strings.TrimSpace(d.VenueName)
	d.FullAddress = strings.TrimSpace(d.FullAddress)
	d.MapURL = strings.TrimSpace(d.MapURL)
	d.Price = strings.TrimSpace(d.Price)
	d.AgeGroup = strings.TrimSpace(d.AgeGroup)
	d.RegistrationURL = strings.TrimSpace(d.RegistrationURL)
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)
	d.AccessibilityNote = strings.TrimSpace(d.AccessibilityNote)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	return d
}

// Validate checks the draft and returns a ValidationError naming the first
// offending field, or nil.
func (d EventDraft) Validate() error {
	return checkStruct(d)
}

// MergeOver returns a copy of d where every empty field inherits the existing
// event's value, implementing partial-update semantics for Update.
func (d EventDraft) MergeOver(e Event) EventDraft {
	d = d.Normalized()
	if d.Name == "" {
		d.Name = e.Name
	}
	if d.Description == "" {
		d.Description = e.Description
	}
	if d.Category == "" {
		d.Category = e.Category
	}
	if d.OrganizerName == "" {
		d.OrganizerName = e.OrganizerName
	}
	if d.Date.IsZero() {
		d.Date = e.Date
	}
	if d.Time == "" {
		d.Time = e.Time
	}
	if d.DurationText == "" {
		d.DurationText = e.DurationText
	}
	if d.City == "" {
		d.City = e.City
	}
	if d.VenueName == "" {
		d.VenueName = e.VenueName
	}
	if d.FullAddress == "" {
		d.FullAddress = e.FullAddress
	}
	if d.MapURL == "" {
		d.MapURL = e.MapURL
	}
	if d.Price == "" {
		d.Price = e.Price
	}
	if d.AgeGroup == "" {
		d.AgeGroup = e.AgeGroup
	}
	if d.RegistrationURL == "" {
		d.RegistrationURL = e.RegistrationURL
	}
	if d.ContactEmail == "" {
		d.ContactEmail = e.ContactEmail
	}
	if d.AccessibilityNote == "" {
		d.AccessibilityNote = e.AccessibilityNote
	}
	if d.ImageURL == "" {
		d.ImageURL = e.ImageURL
	}
	return d
}

// Normalized returns a copy of the draft with trimmed text fields.
func (d CommentDraft) Normalized() CommentDraft {
	d.AuthorName = strings.TrimSpace(d.AuthorName)
	d.AuthorImageURL = strings.TrimSpace(d.AuthorImageURL)
	d.Text = strings.TrimSpace(d.Text)
	return d
}

// Validate checks the draft and returns a ValidationError naming the first
// offending field, or nil.
func (d CommentDraft) Validate() error {
	return checkStruct(d)
}

// checkStruct translates go-playground/validator failures into the pulse
// error taxonomy.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Field(), fe.Value(), validationMessage(fe))
	}
	return errors.NewValidationError("", nil, err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "url":
		return "must be a well-formed absolute URL"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
