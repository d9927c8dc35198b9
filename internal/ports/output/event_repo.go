package output

import (
	"context"

	"github.com/kevpy/clj-registration/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// FindAll returns events ordered by date descending; inactive events are
	// included only when includeInactive is set.
	FindAll(ctx context.Context, includeInactive bool) ([]entities.Event, error)
	// FindByDateRange returns events whose date lies in [from, to], both
	// YYYY-MM-DD inclusive.
	FindByDateRange(ctx context.Context, from, to string) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
}
