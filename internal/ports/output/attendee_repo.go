package output

import (
	"context"

	"github.com/kevpy/clj-registration/internal/domain/entities"
)

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *entities.Attendee) error
	FindByID(ctx context.Context, id string) (*entities.Attendee, error)
	// FindByPhone returns the attendee whose phone number matches exactly,
	// or domain.ErrAttendeeNotFound when there is none.
	FindByPhone(ctx context.Context, phone string) (*entities.Attendee, error)
	FindByName(ctx context.Context, name string) ([]entities.Attendee, error)
	SearchByName(ctx context.Context, term string, limit int) ([]entities.Attendee, error)
	FindAll(ctx context.Context) ([]entities.Attendee, error)
	Update(ctx context.Context, attendee *entities.Attendee) error
	SetFirstTimeGuest(ctx context.Context, id string, firstTime bool) error
}
