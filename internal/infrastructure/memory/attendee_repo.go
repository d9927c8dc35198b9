// Package memory provides mutex-guarded in-memory repositories implementing
// the output ports. They back local development and the application tests;
// they intentionally favor clarity over performance.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

var _ output.AttendeeRepository = (*AttendeeRepository)(nil)

type AttendeeRepository struct {
	mu        sync.RWMutex
	attendees map[string]entities.Attendee
}

func NewAttendeeRepository() *AttendeeRepository {
	return &AttendeeRepository{attendees: make(map[string]entities.Attendee)}
}

func (r *AttendeeRepository) Create(_ context.Context, attendee *entities.Attendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attendee.ID == "" {
		attendee.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now
	r.attendees[attendee.ID] = *attendee
	return nil
}

func (r *AttendeeRepository) FindByID(_ context.Context, id string) (*entities.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if attendee, ok := r.attendees[id]; ok {
		return &attendee, nil
	}
	return nil, domain.ErrAttendeeNotFound
}

func (r *AttendeeRepository) FindByPhone(_ context.Context, phone string) (*entities.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, attendee := range r.attendees {
		if attendee.PhoneNumber == phone {
			return &attendee, nil
		}
	}
	return nil, domain.ErrAttendeeNotFound
}

func (r *AttendeeRepository) FindByName(_ context.Context, name string) ([]entities.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.Attendee
	for _, attendee := range r.attendees {
		if attendee.Name == name {
			out = append(out, attendee)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *AttendeeRepository) SearchByName(_ context.Context, term string, limit int) ([]entities.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	term = strings.ToLower(term)
	var out []entities.Attendee
	for _, attendee := range r.attendees {
		if strings.Contains(strings.ToLower(attendee.Name), term) {
			out = append(out, attendee)
		}
	}
	sortByCreated(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AttendeeRepository) FindAll(_ context.Context) ([]entities.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Attendee, 0, len(r.attendees))
	for _, attendee := range r.attendees {
		out = append(out, attendee)
	}
	sortByCreated(out)
	return out, nil
}

func (r *AttendeeRepository) Update(_ context.Context, attendee *entities.Attendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.attendees[attendee.ID]
	if !ok {
		return domain.ErrAttendeeNotFound
	}
	attendee.CreatedAt = existing.CreatedAt
	attendee.UpdatedAt = time.Now().UTC()
	r.attendees[attendee.ID] = *attendee
	return nil
}

func (r *AttendeeRepository) SetFirstTimeGuest(_ context.Context, id string, firstTime bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attendee, ok := r.attendees[id]
	if !ok {
		return domain.ErrAttendeeNotFound
	}
	attendee.IsFirstTimeGuest = firstTime
	attendee.UpdatedAt = time.Now().UTC()
	r.attendees[id] = attendee
	return nil
}

func sortByCreated(attendees []entities.Attendee) {
	sort.Slice(attendees, func(i, j int) bool {
		if attendees[i].CreatedAt.Equal(attendees[j].CreatedAt) {
			return attendees[i].ID < attendees[j].ID
		}
		return attendees[i].CreatedAt.Before(attendees[j].CreatedAt)
	})
}
