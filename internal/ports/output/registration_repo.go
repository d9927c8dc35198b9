package output

import (
	"context"
	"time"

	"github.com/kevpy/clj-registration/internal/domain/entities"
)

type RegistrationRepository interface {
	// Create inserts a registration. The (eventID, attendeeID) pair is unique;
	// a duplicate insert fails with domain.ErrAlreadyRegistered. Capacity is
	// not enforced here (bulk import path).
	Create(ctx context.Context, registration *entities.Registration) error
	// CreateWithCapacity inserts a registration while holding the event's
	// registration count below maxCapacity (0 = unlimited). The check and the
	// insert are one atomic unit, so two concurrent registrations cannot both
	// take the last slot. Fails with domain.ErrCapacityExceeded or
	// domain.ErrAlreadyRegistered.
	CreateWithCapacity(ctx context.Context, registration *entities.Registration, maxCapacity int) error
	// FindByEventAndAttendee returns domain.ErrNotRegistered when the pair
	// has no registration.
	FindByEventAndAttendee(ctx context.Context, eventID, attendeeID string) (*entities.Registration, error)
	FindByEvent(ctx context.Context, eventID string, attendedOnly bool) ([]entities.Registration, error)
	FindByAttendee(ctx context.Context, attendeeID string) ([]entities.Registration, error)
	FindAll(ctx context.Context) ([]entities.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	MarkAttended(ctx context.Context, id string, at time.Time) error
}
