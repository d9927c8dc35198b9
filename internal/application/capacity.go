package application

import (
	"context"
	"fmt"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

// CapacityGuard validates that an event is active and under its configured
// capacity before a new registration is attempted. It holds no slot; the
// storage layer makes the final check-and-insert atomic.
type CapacityGuard struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
}

func NewCapacityGuard(eventRepo output.EventRepository, registrationRepo output.RegistrationRepository) *CapacityGuard {
	return &CapacityGuard{eventRepo: eventRepo, registrationRepo: registrationRepo}
}

// CheckAndAdmit returns the event when it is active and has room for one more
// registration.
func (g *CapacityGuard) CheckAndAdmit(ctx context.Context, eventID string) (*entities.Event, error) {
	event, err := g.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventNotFoundOrInactive
	}
	if !event.IsActive {
		return nil, domain.ErrEventNotFoundOrInactive
	}
	if event.HasCapacityLimit() {
		count, err := g.registrationRepo.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if count >= int64(event.MaxCapacity) {
			return nil, domain.ErrCapacityExceeded
		}
	}
	return event, nil
}
