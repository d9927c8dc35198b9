package input

import (
	"context"

	"github.com/kevpy/clj-registration/internal/domain/entities"
)

// NewEvent carries the fields for creating an event.
type NewEvent struct {
	Name        string
	Description string
	Date        string // YYYY-MM-DD
	StartTime   string
	EndTime     string
	Location    string
	MaxCapacity int
}

// EventUpdate patches an event; nil fields are left untouched.
type EventUpdate struct {
	Name        *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Location    *string
	MaxCapacity *int
	IsActive    *bool
}

// EventWithCounts decorates an event with its registration tallies.
type EventWithCounts struct {
	Event             entities.Event
	RegistrationCount int
	AttendedCount     int
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, userID string, in NewEvent) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*EventWithCounts, error)
	ListEvents(ctx context.Context, includeInactive bool) ([]EventWithCounts, error)
	UpdateEvent(ctx context.Context, id string, in EventUpdate) (*entities.Event, error)
}
