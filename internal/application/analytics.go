package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

// AnalyticsService computes read-only aggregates over events, attendees and
// registrations. It never writes; the registration core guarantees the
// records it scans are consistent.
type AnalyticsService struct {
	attendeeRepo     output.AttendeeRepository
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	clock            output.Clock
}

func NewAnalyticsService(
	attendeeRepo output.AttendeeRepository,
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	clock output.Clock,
) *AnalyticsService {
	return &AnalyticsService{
		attendeeRepo:     attendeeRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		clock:            clock,
	}
}

func (s *AnalyticsService) DashboardStats(ctx context.Context) (*input.DashboardStats, error) {
	events, err := s.eventRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	attendees, err := s.attendeeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	registrations, err := s.registrationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	today := s.clock.Now().Format(dateLayout)
	stats := &input.DashboardStats{
		TotalEvents:        len(events),
		TotalAttendees:     len(attendees),
		TotalRegistrations: len(registrations),
		GenderStats:        make(map[domain.Gender]int),
	}
	for i := range events {
		if events[i].IsActive {
			stats.ActiveEvents++
			if events[i].Date == today {
				stats.TodaysEvents++
			}
		}
	}
	for i := range registrations {
		if registrations[i].RegistrationDate == today {
			stats.TodaysRegistrations++
		}
		if registrations[i].HasAttended && registrations[i].AttendanceTime.Format(dateLayout) == today {
			stats.TodaysAttendance++
		}
	}
	for i := range attendees {
		stats.GenderStats[attendees[i].Gender]++
	}
	return stats, nil
}

func (s *AnalyticsService) EventAnalytics(ctx context.Context, eventID string) (*input.EventAnalytics, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.FindByEvent(ctx, eventID, false)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}

	analytics := &input.EventAnalytics{
		Event:               *event,
		TotalRegistrations:  len(registrations),
		GenderStats:         make(map[domain.Gender]int),
		GuestTypeStats:      make(map[string]int),
		RegistrationsByDate: make(map[string]int),
	}
	for i := range registrations {
		reg := &registrations[i]
		if reg.HasAttended {
			analytics.AttendedCount++
		}
		analytics.RegistrationsByDate[reg.RegistrationDate]++

		attendee, err := s.attendeeRepo.FindByID(ctx, reg.AttendeeID)
		if err != nil {
			if errors.Is(err, domain.ErrAttendeeNotFound) {
				continue
			}
			return nil, fmt.Errorf("find attendee: %w", err)
		}
		analytics.GenderStats[attendee.Gender]++
		if attendee.IsFirstTimeGuest {
			analytics.GuestTypeStats["firstTime"]++
		} else {
			analytics.GuestTypeStats["returning"]++
		}
	}
	if len(registrations) > 0 {
		rate := float64(analytics.AttendedCount) / float64(len(registrations)) * 100
		analytics.AttendanceRate = int(math.Round(rate))
	}
	return analytics, nil
}

func (s *AnalyticsService) MonthlyStats(ctx context.Context, year, month int) (*input.MonthlyStats, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", domain.ErrValidation)
	}
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := fmt.Sprintf("%04d-%02d-31", year, month)
	events, err := s.eventRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	stats := &input.MonthlyStats{
		Year:       year,
		Month:      month,
		EventCount: len(events),
		Events:     make([]input.EventWithCounts, len(events)),
	}
	for i := range events {
		registrations, err := s.registrationRepo.FindByEvent(ctx, events[i].ID, false)
		if err != nil {
			return nil, fmt.Errorf("find registrations: %w", err)
		}
		attended := 0
		for j := range registrations {
			if registrations[j].HasAttended {
				attended++
			}
		}
		stats.Events[i] = input.EventWithCounts{
			Event:             events[i],
			RegistrationCount: len(registrations),
			AttendedCount:     attended,
		}
		stats.TotalRegistrations += len(registrations)
		stats.TotalAttendance += attended
	}
	return stats, nil
}
