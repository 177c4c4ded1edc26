package embedded

import (
	"time"

	"github.com/goccy/go-yaml"

	"github.com/localpulse/pulse/pkg/errors"
	"github.com/localpulse/pulse/pkg/events"
)

// seedDateLayout is the calendar-date format used in the seed YAML.
const seedDateLayout = "2006-01-02"

// seedEvent mirrors events.Event for YAML decoding, with the calendar date
// as a plain YYYY-MM-DD string.
type seedEvent struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	Category          string  `yaml:"category"`
	OrganizerName     string  `yaml:"organizer_name"`
	Date              string  `yaml:"date"`
	Time              string  `yaml:"time"`
	DurationText      string  `yaml:"duration_text"`
	City              string  `yaml:"city"`
	VenueName         string  `yaml:"venue_name"`
	FullAddress       string  `yaml:"full_address"`
	MapURL            string  `yaml:"map_url"`
	Price             string  `yaml:"price"`
	AgeGroup          string  `yaml:"age_group"`
	RegistrationURL   string  `yaml:"registration_url"`
	ContactEmail      string  `yaml:"contact_email"`
	AccessibilityNote string  `yaml:"accessibility_note"`
	ImageURL          string  `yaml:"image_url"`
	Rating            float64 `yaml:"rating"`
}

// Events decodes the embedded seed events in file order (store order,
// newest first). Every record is stamped with the system organizer.
func Events() ([]events.Event, error) {
	data, err := FS.ReadFile("catalog/events.yaml")
	if err != nil {
		return nil, err
	}

	var seeds []seedEvent
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, err
	}

	out := make([]events.Event, 0, len(seeds))
	for _, s := range seeds {
		date, err := time.Parse(seedDateLayout, s.Date)
		if err != nil {
			return nil, errors.WrapValidation("date", err)
		}
		out = append(out, events.Event{
			ID:                s.ID,
			Name:              s.Name,
			Description:       s.Description,
			Category:          s.Category,
			OrganizerName:     s.OrganizerName,
			OrganizerID:       events.OrganizerSystem,
			Date:              date,
			Time:              s.Time,
			DurationText:      s.DurationText,
			City:              s.City,
			VenueName:         s.VenueName,
			FullAddress:       s.FullAddress,
			MapURL:            s.MapURL,
			Price:             s.Price,
			AgeGroup:          s.AgeGroup,
			RegistrationURL:   s.RegistrationURL,
			ContactEmail:      s.ContactEmail,
			AccessibilityNote: s.AccessibilityNote,
			ImageURL:          s.ImageURL,
			Rating:            s.Rating,
		})
	}
	return out, nil
}

// Cities decodes the embedded city facet list.
func Cities() ([]events.City, error) {
	data, err := FS.ReadFile("catalog/cities.yaml")
	if err != nil {
		return nil, err
	}

	var cities []events.City
	if err := yaml.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}
