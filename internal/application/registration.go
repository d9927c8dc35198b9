package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

const dateLayout = "2006-01-02"

// RegistrationService orchestrates door registration: capacity check,
// identity resolution, registration insert, first-time flag maintenance.
type RegistrationService struct {
	attendeeRepo     output.AttendeeRepository
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	resolver         *IdentityResolver
	guard            *CapacityGuard
	clock            output.Clock
}

func NewRegistrationService(
	attendeeRepo output.AttendeeRepository,
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	resolver *IdentityResolver,
	guard *CapacityGuard,
	clock output.Clock,
) *RegistrationService {
	return &RegistrationService{
		attendeeRepo:     attendeeRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		resolver:         resolver,
		guard:            guard,
		clock:            clock,
	}
}

// RegisterAtDoor registers an attendee for an event and records attendance in
// one step. Each stage is a hard precondition for the next: capacity, then
// identity, then the unique (event, attendee) registration.
func (s *RegistrationService) RegisterAtDoor(ctx context.Context, userID, eventID string, attendee input.AttendeeInput, opts input.IdentityOptions) (string, error) {
	event, err := s.guard.CheckAndAdmit(ctx, eventID)
	if err != nil {
		return "", err
	}

	attendeeID, _, err := s.resolver.Resolve(ctx, userID, attendee, opts)
	if err != nil {
		return "", err
	}

	// Precedent check for a clean error; the storage layer's uniqueness
	// constraint still defends the invariant under concurrency.
	if _, err := s.registrationRepo.FindByEventAndAttendee(ctx, eventID, attendeeID); err == nil {
		return "", domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotRegistered) {
		return "", fmt.Errorf("check existing registration: %w", err)
	}

	now := s.clock.Now()
	registration := &entities.Registration{
		EventID:          eventID,
		AttendeeID:       attendeeID,
		RegistrationDate: now.Format(dateLayout),
		RegistrationTime: now,
		RegisteredBy:     userID,
		HasAttended:      true,
		AttendanceTime:   now,
	}
	if err := s.registrationRepo.CreateWithCapacity(ctx, registration, event.MaxCapacity); err != nil {
		return "", err
	}

	if err := clearFirstTimeGuest(ctx, s.attendeeRepo, attendeeID); err != nil {
		return "", err
	}
	return registration.ID, nil
}

// MarkAttendance flips an existing registration to attended. This is the
// legacy two-phase flow; door registration records attendance immediately.
func (s *RegistrationService) MarkAttendance(ctx context.Context, eventID, attendeeID string) error {
	registration, err := s.registrationRepo.FindByEventAndAttendee(ctx, eventID, attendeeID)
	if err != nil {
		return err
	}
	if registration.HasAttended {
		return domain.ErrAlreadyAttended
	}
	if err := s.registrationRepo.MarkAttended(ctx, registration.ID, s.clock.Now()); err != nil {
		return fmt.Errorf("mark attended: %w", err)
	}
	return clearFirstTimeGuest(ctx, s.attendeeRepo, attendeeID)
}

// EventRegistrations lists an event's registrations joined with their
// attendee records, optionally restricted to attended ones.
func (s *RegistrationService) EventRegistrations(ctx context.Context, eventID string, attendedOnly bool) ([]input.RegistrationWithAttendee, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.FindByEvent(ctx, eventID, attendedOnly)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	out := make([]input.RegistrationWithAttendee, len(registrations))
	for i := range registrations {
		attendee, err := s.attendeeRepo.FindByID(ctx, registrations[i].AttendeeID)
		if err != nil && !errors.Is(err, domain.ErrAttendeeNotFound) {
			return nil, fmt.Errorf("find attendee: %w", err)
		}
		out[i] = input.RegistrationWithAttendee{Registration: registrations[i], Attendee: attendee}
	}
	return out, nil
}

// AttendeeHistory returns an attendee's registrations joined with their
// events, plus attendance totals.
func (s *RegistrationService) AttendeeHistory(ctx context.Context, attendeeID string) (*input.AttendeeHistory, error) {
	attendee, err := s.attendeeRepo.FindByID(ctx, attendeeID)
	if err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.FindByAttendee(ctx, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	history := &input.AttendeeHistory{
		Attendee:      *attendee,
		Registrations: make([]input.RegistrationWithEvent, len(registrations)),
		TotalEvents:   len(registrations),
	}
	for i := range registrations {
		event, err := s.eventRepo.FindByID(ctx, registrations[i].EventID)
		if err != nil && !errors.Is(err, domain.ErrEventNotFound) {
			return nil, fmt.Errorf("find event: %w", err)
		}
		history.Registrations[i] = input.RegistrationWithEvent{Registration: registrations[i], Event: event}
		if registrations[i].HasAttended {
			history.AttendedEvents++
		}
	}
	return history, nil
}

// SearchAttendees looks attendees up by name prefix for the door UI.
func (s *RegistrationService) SearchAttendees(ctx context.Context, term string, limit int) ([]entities.Attendee, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entities.Attendee{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.attendeeRepo.SearchByName(ctx, term, limit)
}

// AttendeeByPhone returns the attendee with an exactly matching phone number.
func (s *RegistrationService) AttendeeByPhone(ctx context.Context, phone string) (*entities.Attendee, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number", domain.ErrValidation)
	}
	return s.attendeeRepo.FindByPhone(ctx, phone)
}
