package input

import (
	"context"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
)

// AttendeeInput is the candidate attendee data submitted at the door.
type AttendeeInput struct {
	Name             string
	PlaceOfResidence string
	PhoneNumber      string
	Email            string
	Gender           domain.Gender
}

// IdentityOptions steers identity resolution for a registration request.
type IdentityOptions struct {
	// UseExistingAttendee makes ExistingAttendeeID authoritative, bypassing
	// phone and name matching.
	UseExistingAttendee bool
	ExistingAttendeeID  string
	IsFirstTimeGuest    bool
}

// RegistrationWithAttendee joins a registration with its attendee record for
// per-event listings.
type RegistrationWithAttendee struct {
	Registration entities.Registration
	Attendee     *entities.Attendee
}

// AttendeeHistory is an attendee's full registration history joined with the
// events attended.
type AttendeeHistory struct {
	Attendee       entities.Attendee
	Registrations  []RegistrationWithEvent
	TotalEvents    int
	AttendedEvents int
}

type RegistrationWithEvent struct {
	Registration entities.Registration
	Event        *entities.Event
}

type RegistrationUseCase interface {
	// RegisterAtDoor registers and checks in an attendee in one step, and
	// returns the new registration id.
	RegisterAtDoor(ctx context.Context, userID, eventID string, attendee AttendeeInput, opts IdentityOptions) (string, error)
	// MarkAttendance flips an existing registration to attended (legacy
	// two-phase flow kept for rows created before door registration).
	MarkAttendance(ctx context.Context, eventID, attendeeID string) error
	EventRegistrations(ctx context.Context, eventID string, attendedOnly bool) ([]RegistrationWithAttendee, error)
	AttendeeHistory(ctx context.Context, attendeeID string) (*AttendeeHistory, error)
	SearchAttendees(ctx context.Context, term string, limit int) ([]entities.Attendee, error)
	AttendeeByPhone(ctx context.Context, phone string) (*entities.Attendee, error)
}
