package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/infrastructure/memory"
	"github.com/kevpy/clj-registration/pkg/clock"
)

type AnalyticsServiceSuite struct {
	suite.Suite
	attendees     *memory.AttendeeRepository
	events        *memory.EventRepository
	registrations *memory.RegistrationRepository
	service       *AnalyticsService
	ctx           context.Context
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.attendees = memory.NewAttendeeRepository()
	s.events = memory.NewEventRepository()
	s.registrations = memory.NewRegistrationRepository()
	s.service = NewAnalyticsService(s.attendees, s.events, s.registrations, clock.Fixed{Time: testNow})
	s.ctx = context.Background()
}

func (s *AnalyticsServiceSuite) seedAttendee(name string, gender domain.Gender, firstTime bool) *entities.Attendee {
	attendee := &entities.Attendee{Name: name, Gender: gender, IsFirstTimeGuest: firstTime, RegisteredBy: testUserID}
	s.Require().NoError(s.attendees.Create(s.ctx, attendee))
	return attendee
}

func (s *AnalyticsServiceSuite) seedEvent(name, date string, active bool) *entities.Event {
	event := &entities.Event{Name: name, Date: date, IsActive: active, CreatedBy: testUserID}
	s.Require().NoError(s.events.Create(s.ctx, event))
	return event
}

func (s *AnalyticsServiceSuite) seedRegistration(eventID, attendeeID, date string, attended bool) {
	registration := &entities.Registration{
		EventID:          eventID,
		AttendeeID:       attendeeID,
		RegistrationDate: date,
		RegistrationTime: testNow,
		RegisteredBy:     testUserID,
	}
	if attended {
		registration.HasAttended = true
		registration.AttendanceTime = testNow
	}
	s.Require().NoError(s.registrations.Create(s.ctx, registration))
}

func (s *AnalyticsServiceSuite) TestDashboardStats() {
	today := s.seedEvent("Today", "2024-03-16", true)
	s.seedEvent("Later", "2024-03-23", true)
	s.seedEvent("Retired", "2024-03-16", false)

	alice := s.seedAttendee("Alice", domain.GenderFemale, false)
	bob := s.seedAttendee("Bob", domain.GenderMale, true)
	s.seedAttendee("Casey", domain.GenderOther, false)

	s.seedRegistration(today.ID, alice.ID, "2024-03-16", true)
	s.seedRegistration(today.ID, bob.ID, "2024-03-16", false)

	stats, err := s.service.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.TotalEvents)
	s.Equal(2, stats.ActiveEvents)
	s.Equal(1, stats.TodaysEvents)
	s.Equal(3, stats.TotalAttendees)
	s.Equal(2, stats.TotalRegistrations)
	s.Equal(2, stats.TodaysRegistrations)
	s.Equal(1, stats.TodaysAttendance)
	s.Equal(1, stats.GenderStats[domain.GenderFemale])
	s.Equal(1, stats.GenderStats[domain.GenderMale])
	s.Equal(1, stats.GenderStats[domain.GenderOther])
}

func (s *AnalyticsServiceSuite) TestEventAnalytics() {
	s.Run("aggregates attendance, gender and guest type", func() {
		event := s.seedEvent("Conference", "2024-03-16", true)
		alice := s.seedAttendee("Alice", domain.GenderFemale, true)
		bob := s.seedAttendee("Bob", domain.GenderMale, false)
		casey := s.seedAttendee("Casey", domain.GenderFemale, false)

		s.seedRegistration(event.ID, alice.ID, "2024-03-15", true)
		s.seedRegistration(event.ID, bob.ID, "2024-03-16", true)
		s.seedRegistration(event.ID, casey.ID, "2024-03-16", false)

		analytics, err := s.service.EventAnalytics(s.ctx, event.ID)
		s.Require().NoError(err)
		s.Equal(3, analytics.TotalRegistrations)
		s.Equal(2, analytics.AttendedCount)
		s.Equal(67, analytics.AttendanceRate)
		s.Equal(2, analytics.GenderStats[domain.GenderFemale])
		s.Equal(1, analytics.GenderStats[domain.GenderMale])
		s.Equal(1, analytics.GuestTypeStats["firstTime"])
		s.Equal(2, analytics.GuestTypeStats["returning"])
		s.Equal(1, analytics.RegistrationsByDate["2024-03-15"])
		s.Equal(2, analytics.RegistrationsByDate["2024-03-16"])
	})

	s.Run("empty event has a zero rate", func() {
		event := s.seedEvent("Empty", "2024-03-16", true)
		analytics, err := s.service.EventAnalytics(s.ctx, event.ID)
		s.Require().NoError(err)
		s.Equal(0, analytics.TotalRegistrations)
		s.Equal(0, analytics.AttendanceRate)
	})

	s.Run("unknown event fails", func() {
		_, err := s.service.EventAnalytics(s.ctx, "missing")
		s.ErrorIs(err, domain.ErrEventNotFound)
	})
}

func (s *AnalyticsServiceSuite) TestMonthlyStats() {
	s.Run("aggregates events within the month", func() {
		march := s.seedEvent("March Event", "2024-03-10", true)
		s.seedEvent("April Event", "2024-04-02", true)
		attendee := s.seedAttendee("Alice", domain.GenderFemale, false)
		s.seedRegistration(march.ID, attendee.ID, "2024-03-10", true)

		stats, err := s.service.MonthlyStats(s.ctx, 2024, 3)
		s.Require().NoError(err)
		s.Equal(2024, stats.Year)
		s.Equal(3, stats.Month)
		s.Equal(1, stats.EventCount)
		s.Equal(1, stats.TotalRegistrations)
		s.Equal(1, stats.TotalAttendance)
		s.Require().Len(stats.Events, 1)
		s.Equal(march.ID, stats.Events[0].Event.ID)
		s.Equal(1, stats.Events[0].RegistrationCount)
	})

	s.Run("rejects an out-of-range month", func() {
		_, err := s.service.MonthlyStats(s.ctx, 2024, 0)
		s.ErrorIs(err, domain.ErrValidation)
		_, err = s.service.MonthlyStats(s.ctx, 2024, 13)
		s.ErrorIs(err, domain.ErrValidation)
	})
}

func (s *AnalyticsServiceSuite) TestCapacityGuard() {
	guard := NewCapacityGuard(s.events, s.registrations)

	s.Run("admits into an active event with room", func() {
		event := s.seedEvent("Open", "2024-03-16", true)
		admitted, err := guard.CheckAndAdmit(s.ctx, event.ID)
		s.Require().NoError(err)
		s.Equal(event.ID, admitted.ID)
	})

	s.Run("rejects a full event", func() {
		event := &entities.Event{Name: "Full", Date: "2024-03-16", MaxCapacity: 1, IsActive: true, CreatedBy: testUserID}
		s.Require().NoError(s.events.Create(s.ctx, event))
		attendee := s.seedAttendee("Only", domain.GenderOther, false)
		s.seedRegistration(event.ID, attendee.ID, "2024-03-16", true)

		_, err := guard.CheckAndAdmit(s.ctx, event.ID)
		s.ErrorIs(err, domain.ErrCapacityExceeded)
	})

	s.Run("rejects inactive and unknown events", func() {
		event := s.seedEvent("Closed", "2024-03-16", false)
		_, err := guard.CheckAndAdmit(s.ctx, event.ID)
		s.ErrorIs(err, domain.ErrEventNotFoundOrInactive)

		_, err = guard.CheckAndAdmit(s.ctx, "missing")
		s.ErrorIs(err, domain.ErrEventNotFoundOrInactive)
	})
}
