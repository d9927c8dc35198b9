package entities

import "time"

// Registration links one attendee to one event. The (EventID, AttendeeID)
// pair is unique; HasAttended = true implies AttendanceTime is set.
type Registration struct {
	ID               string
	EventID          string
	AttendeeID       string
	RegistrationDate string // YYYY-MM-DD, caller's local calendar date
	RegistrationTime time.Time
	RegisteredBy     string
	HasAttended      bool
	AttendanceTime   time.Time // zero = not attended yet
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
