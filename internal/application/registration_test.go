package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/infrastructure/memory"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/pkg/clock"
)

var testNow = time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC)

type RegistrationServiceSuite struct {
	suite.Suite
	attendees     *memory.AttendeeRepository
	events        *memory.EventRepository
	registrations *memory.RegistrationRepository
	service       *RegistrationService
	ctx           context.Context
}

func TestRegistrationServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceSuite))
}

func (s *RegistrationServiceSuite) SetupTest() {
	s.attendees = memory.NewAttendeeRepository()
	s.events = memory.NewEventRepository()
	s.registrations = memory.NewRegistrationRepository()
	resolver := NewIdentityResolver(s.attendees)
	guard := NewCapacityGuard(s.events, s.registrations)
	s.service = NewRegistrationService(s.attendees, s.events, s.registrations, resolver, guard, clock.Fixed{Time: testNow})
	s.ctx = context.Background()
}

func (s *RegistrationServiceSuite) seedEvent(maxCapacity int, active bool) *entities.Event {
	event := &entities.Event{
		Name:        "Sunday Service",
		Date:        "2024-03-16",
		MaxCapacity: maxCapacity,
		IsActive:    active,
		CreatedBy:   testUserID,
	}
	s.Require().NoError(s.events.Create(s.ctx, event))
	return event
}

func (s *RegistrationServiceSuite) register(eventID, name, phone string, firstTime bool) (string, error) {
	in := input.AttendeeInput{Name: name, PhoneNumber: phone, PlaceOfResidence: "Nairobi"}
	return s.service.RegisterAtDoor(s.ctx, testUserID, eventID, in, input.IdentityOptions{IsFirstTimeGuest: firstTime})
}

func (s *RegistrationServiceSuite) TestRegisterAtDoor() {
	s.Run("records registration and attendance together", func() {
		event := s.seedEvent(0, true)
		registrationID, err := s.register(event.ID, "Jane", "0700", true)
		s.Require().NoError(err)
		s.Require().NotEmpty(registrationID)

		attendee, err := s.attendees.FindByPhone(s.ctx, "0700")
		s.Require().NoError(err)

		registration, err := s.registrations.FindByEventAndAttendee(s.ctx, event.ID, attendee.ID)
		s.Require().NoError(err)
		s.Equal(registrationID, registration.ID)
		s.Equal("2024-03-16", registration.RegistrationDate)
		s.Equal(testNow, registration.RegistrationTime)
		s.True(registration.HasAttended)
		s.Equal(testNow, registration.AttendanceTime)
		s.Equal(testUserID, registration.RegisteredBy)
	})

	s.Run("clears the first-time flag after attendance", func() {
		event := s.seedEvent(0, true)
		_, err := s.register(event.ID, "Sam", "0701", true)
		s.Require().NoError(err)

		attendee, err := s.attendees.FindByPhone(s.ctx, "0701")
		s.Require().NoError(err)
		s.False(attendee.IsFirstTimeGuest)
	})

	s.Run("rejects a second registration for the same attendee", func() {
		event := s.seedEvent(0, true)
		_, err := s.register(event.ID, "Jane", "0702", false)
		s.Require().NoError(err)

		_, err = s.register(event.ID, "Jane Renamed", "0702", false)
		s.ErrorIs(err, domain.ErrAlreadyRegistered)

		count, err := s.registrations.CountByEvent(s.ctx, event.ID)
		s.Require().NoError(err)
		s.Equal(int64(1), count)
	})

	s.Run("allows the same attendee into a different event", func() {
		event1 := s.seedEvent(0, true)
		event2 := s.seedEvent(0, true)
		_, err := s.register(event1.ID, "Jane", "0703", false)
		s.Require().NoError(err)
		_, err = s.register(event2.ID, "Jane", "0703", false)
		s.NoError(err)
	})

	s.Run("enforces capacity at the boundary", func() {
		event := s.seedEvent(2, true)
		_, err := s.register(event.ID, "A", "0710", false)
		s.Require().NoError(err)
		_, err = s.register(event.ID, "B", "0711", false)
		s.Require().NoError(err)

		_, err = s.register(event.ID, "C", "0712", false)
		s.ErrorIs(err, domain.ErrCapacityExceeded)

		count, err := s.registrations.CountByEvent(s.ctx, event.ID)
		s.Require().NoError(err)
		s.Equal(int64(2), count)
	})

	s.Run("zero capacity means unlimited", func() {
		event := s.seedEvent(0, true)
		for i, phone := range []string{"0720", "0721", "0722", "0723"} {
			_, err := s.register(event.ID, "Guest "+phone, phone, i == 0)
			s.Require().NoError(err)
		}
	})

	s.Run("rejects an inactive event before touching identity", func() {
		event := s.seedEvent(0, false)
		before, err := s.attendees.FindAll(s.ctx)
		s.Require().NoError(err)

		_, err = s.register(event.ID, "Uninvited", "0730", false)
		s.ErrorIs(err, domain.ErrEventNotFoundOrInactive)

		after, err := s.attendees.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("rejects an unknown event", func() {
		_, err := s.register("missing", "Jane", "0731", false)
		s.ErrorIs(err, domain.ErrEventNotFoundOrInactive)
	})
}

func (s *RegistrationServiceSuite) TestMarkAttendance() {
	s.Run("flips a pending registration to attended", func() {
		event := s.seedEvent(0, true)
		attendee := &entities.Attendee{Name: "Jane", IsFirstTimeGuest: true, RegisteredBy: testUserID}
		s.Require().NoError(s.attendees.Create(s.ctx, attendee))
		s.Require().NoError(s.registrations.Create(s.ctx, &entities.Registration{
			EventID:          event.ID,
			AttendeeID:       attendee.ID,
			RegistrationDate: "2024-03-16",
			RegistrationTime: testNow,
			RegisteredBy:     testUserID,
		}))

		s.Require().NoError(s.service.MarkAttendance(s.ctx, event.ID, attendee.ID))

		registration, err := s.registrations.FindByEventAndAttendee(s.ctx, event.ID, attendee.ID)
		s.Require().NoError(err)
		s.True(registration.HasAttended)
		s.Equal(testNow, registration.AttendanceTime)

		updated, err := s.attendees.FindByID(s.ctx, attendee.ID)
		s.Require().NoError(err)
		s.False(updated.IsFirstTimeGuest)
	})

	s.Run("fails when the attendee is not registered", func() {
		event := s.seedEvent(0, true)
		err := s.service.MarkAttendance(s.ctx, event.ID, "nobody")
		s.ErrorIs(err, domain.ErrNotRegistered)
	})

	s.Run("fails when attendance was already recorded", func() {
		event := s.seedEvent(0, true)
		_, err := s.register(event.ID, "Jane", "0740", false)
		s.Require().NoError(err)
		attendee, err := s.attendees.FindByPhone(s.ctx, "0740")
		s.Require().NoError(err)

		err = s.service.MarkAttendance(s.ctx, event.ID, attendee.ID)
		s.ErrorIs(err, domain.ErrAlreadyAttended)
	})
}

func (s *RegistrationServiceSuite) TestEventRegistrations() {
	event := s.seedEvent(0, true)
	_, err := s.register(event.ID, "Jane", "0750", false)
	s.Require().NoError(err)

	pending := &entities.Attendee{Name: "Pete", RegisteredBy: testUserID}
	s.Require().NoError(s.attendees.Create(s.ctx, pending))
	s.Require().NoError(s.registrations.Create(s.ctx, &entities.Registration{
		EventID:          event.ID,
		AttendeeID:       pending.ID,
		RegistrationDate: "2024-03-16",
		RegistrationTime: testNow.Add(time.Minute),
		RegisteredBy:     testUserID,
	}))

	all, err := s.service.EventRegistrations(s.ctx, event.ID, false)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Require().NotNil(all[0].Attendee)
	s.Equal("Jane", all[0].Attendee.Name)

	attended, err := s.service.EventRegistrations(s.ctx, event.ID, true)
	s.Require().NoError(err)
	s.Len(attended, 1)

	_, err = s.service.EventRegistrations(s.ctx, "missing", false)
	s.ErrorIs(err, domain.ErrEventNotFound)
}

func (s *RegistrationServiceSuite) TestAttendeeHistory() {
	event1 := s.seedEvent(0, true)
	event2 := s.seedEvent(0, true)
	_, err := s.register(event1.ID, "Jane", "0760", false)
	s.Require().NoError(err)
	attendee, err := s.attendees.FindByPhone(s.ctx, "0760")
	s.Require().NoError(err)

	s.Require().NoError(s.registrations.Create(s.ctx, &entities.Registration{
		EventID:          event2.ID,
		AttendeeID:       attendee.ID,
		RegistrationDate: "2024-03-17",
		RegistrationTime: testNow.Add(24 * time.Hour),
		RegisteredBy:     testUserID,
	}))

	history, err := s.service.AttendeeHistory(s.ctx, attendee.ID)
	s.Require().NoError(err)
	s.Equal(2, history.TotalEvents)
	s.Equal(1, history.AttendedEvents)
	s.Len(history.Registrations, 2)
	s.Require().NotNil(history.Registrations[0].Event)
	s.Equal(event1.ID, history.Registrations[0].Event.ID)

	_, err = s.service.AttendeeHistory(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrAttendeeNotFound)
}

func (s *RegistrationServiceSuite) TestAttendeeLookups() {
	s.Run("search trims and bounds the term", func() {
		for _, name := range []string{"Alice", "Alina", "Bob"} {
			s.Require().NoError(s.attendees.Create(s.ctx, &entities.Attendee{Name: name, RegisteredBy: testUserID}))
		}
		found, err := s.service.SearchAttendees(s.ctx, " Ali ", 0)
		s.Require().NoError(err)
		s.Len(found, 2)

		found, err = s.service.SearchAttendees(s.ctx, "   ", 10)
		s.Require().NoError(err)
		s.Empty(found)
	})

	s.Run("phone lookup requires a phone", func() {
		_, err := s.service.AttendeeByPhone(s.ctx, " ")
		s.ErrorIs(err, domain.ErrValidation)

		_, err = s.service.AttendeeByPhone(s.ctx, "0000")
		s.ErrorIs(err, domain.ErrAttendeeNotFound)
	})
}
