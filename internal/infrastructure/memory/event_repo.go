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

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]entities.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]entities.Event)}
}

func (r *EventRepository) Create(_ context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if event, ok := r.events[id]; ok {
		return &event, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *EventRepository) FindAll(_ context.Context, includeInactive bool) ([]entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.Event
	for _, event := range r.events {
		if includeInactive || event.IsActive {
			out = append(out, event)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *EventRepository) FindByDateRange(_ context.Context, from, to string) ([]entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.Event
	for _, event := range r.events {
		if event.Date >= from && event.Date <= to {
			out = append(out, event)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *EventRepository) Update(_ context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now().UTC()
	r.events[event.ID] = *event
	return nil
}

func sortByDateDesc(events []entities.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date == events[j].Date {
			return events[i].ID < events[j].ID
		}
		return events[i].Date > events[j].Date
	})
}
