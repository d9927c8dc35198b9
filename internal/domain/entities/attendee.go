package entities

import (
	"time"

	"github.com/kevpy/clj-registration/internal/domain"
)

// Attendee is a person independent of any particular event. Phone number is
// treated as a de-facto unique key when present; (name, place of residence)
// is the fallback identity for attendees without one.
type Attendee struct {
	ID               string
	Name             string
	PlaceOfResidence string
	PhoneNumber      string
	Email            string
	Gender           domain.Gender
	IsFirstTimeGuest bool
	RegisteredBy     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
