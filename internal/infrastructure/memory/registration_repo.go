package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

type RegistrationRepository struct {
	mu            sync.Mutex
	registrations map[string]entities.Registration
	byPair        map[pairKey]string // (eventID, attendeeID) -> registration id
}

type pairKey struct {
	eventID    string
	attendeeID string
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		registrations: make(map[string]entities.Registration),
		byPair:        make(map[pairKey]string),
	}
}

func (r *RegistrationRepository) Create(_ context.Context, registration *entities.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(registration)
}

func (r *RegistrationRepository) CreateWithCapacity(_ context.Context, registration *entities.Registration, maxCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// The mutex makes the count and the insert one atomic unit, matching the
	// row-lock transaction of the postgres implementation.
	if maxCapacity > 0 {
		count := 0
		for _, existing := range r.registrations {
			if existing.EventID == registration.EventID {
				count++
			}
		}
		if count >= maxCapacity {
			return domain.ErrCapacityExceeded
		}
	}
	return r.insertLocked(registration)
}

func (r *RegistrationRepository) insertLocked(registration *entities.Registration) error {
	key := pairKey{registration.EventID, registration.AttendeeID}
	if _, exists := r.byPair[key]; exists {
		return domain.ErrAlreadyRegistered
	}
	if registration.ID == "" {
		registration.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	registration.CreatedAt = now
	registration.UpdatedAt = now
	r.registrations[registration.ID] = *registration
	r.byPair[key] = registration.ID
	return nil
}

func (r *RegistrationRepository) FindByEventAndAttendee(_ context.Context, eventID, attendeeID string) (*entities.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[pairKey{eventID, attendeeID}]
	if !ok {
		return nil, domain.ErrNotRegistered
	}
	registration := r.registrations[id]
	return &registration, nil
}

func (r *RegistrationRepository) FindByEvent(_ context.Context, eventID string, attendedOnly bool) ([]entities.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Registration
	for _, registration := range r.registrations {
		if registration.EventID != eventID {
			continue
		}
		if attendedOnly && !registration.HasAttended {
			continue
		}
		out = append(out, registration)
	}
	sortByRegistrationTime(out)
	return out, nil
}

func (r *RegistrationRepository) FindByAttendee(_ context.Context, attendeeID string) ([]entities.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Registration
	for _, registration := range r.registrations {
		if registration.AttendeeID == attendeeID {
			out = append(out, registration)
		}
	}
	sortByRegistrationTime(out)
	return out, nil
}

func (r *RegistrationRepository) FindAll(_ context.Context) ([]entities.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Registration, 0, len(r.registrations))
	for _, registration := range r.registrations {
		out = append(out, registration)
	}
	sortByRegistrationTime(out)
	return out, nil
}

func (r *RegistrationRepository) CountByEvent(_ context.Context, eventID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, registration := range r.registrations {
		if registration.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *RegistrationRepository) MarkAttended(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	registration, ok := r.registrations[id]
	if !ok {
		return domain.ErrNotRegistered
	}
	registration.HasAttended = true
	registration.AttendanceTime = at
	registration.UpdatedAt = time.Now().UTC()
	r.registrations[id] = registration
	return nil
}

func sortByRegistrationTime(registrations []entities.Registration) {
	sort.Slice(registrations, func(i, j int) bool {
		if registrations[i].RegistrationTime.Equal(registrations[j].RegistrationTime) {
			return registrations[i].ID < registrations[j].ID
		}
		return registrations[i].RegistrationTime.Before(registrations[j].RegistrationTime)
	})
}
