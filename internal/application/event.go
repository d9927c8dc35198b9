package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

type EventService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
}

func NewEventService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, userID string, in input.NewEvent) (*entities.Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: event name", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: event date", domain.ErrValidation)
	}
	event := &entities.Event{
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		MaxCapacity: in.MaxCapacity,
		IsActive:    true,
		CreatedBy:   userID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*input.EventWithCounts, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, event)
}

func (s *EventService) ListEvents(ctx context.Context, includeInactive bool) ([]input.EventWithCounts, error) {
	events, err := s.eventRepo.FindAll(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]input.EventWithCounts, len(events))
	for i := range events {
		ec, err := s.withCounts(ctx, &events[i])
		if err != nil {
			return nil, err
		}
		out[i] = *ec
	}
	return out, nil
}

// UpdateEvent patches the event. Lowering the capacity below the number of
// existing registrations is rejected.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in input.EventUpdate) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: event name", domain.ErrValidation)
		}
		event.Name = name
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.StartTime != nil {
		event.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = *in.EndTime
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.MaxCapacity != nil {
		if *in.MaxCapacity > 0 {
			count, err := s.registrationRepo.CountByEvent(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("count registrations: %w", err)
			}
			if count > int64(*in.MaxCapacity) {
				return nil, domain.ErrCannotReduceCapacity
			}
		}
		event.MaxCapacity = *in.MaxCapacity
	}
	if in.IsActive != nil {
		event.IsActive = *in.IsActive
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *EventService) withCounts(ctx context.Context, event *entities.Event) (*input.EventWithCounts, error) {
	registrations, err := s.registrationRepo.FindByEvent(ctx, event.ID, false)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	attended := 0
	for i := range registrations {
		if registrations[i].HasAttended {
			attended++
		}
	}
	return &input.EventWithCounts{
		Event:             *event,
		RegistrationCount: len(registrations),
		AttendedCount:     attended,
	}, nil
}
