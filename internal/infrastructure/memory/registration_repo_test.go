package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
)

func newRegistration(eventID, attendeeID string) *entities.Registration {
	return &entities.Registration{
		EventID:          eventID,
		AttendeeID:       attendeeID,
		RegistrationDate: "2024-03-16",
		RegistrationTime: time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
		RegisteredBy:     "usher-1",
	}
}

func TestRegistrationRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository()

	require.NoError(t, repo.Create(ctx, newRegistration("e1", "a1")))
	assert.ErrorIs(t, repo.Create(ctx, newRegistration("e1", "a1")), domain.ErrAlreadyRegistered)
	assert.NoError(t, repo.Create(ctx, newRegistration("e1", "a2")))
	assert.NoError(t, repo.Create(ctx, newRegistration("e2", "a1")))
}

func TestRegistrationRepositoryCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects inserts past the limit", func(t *testing.T) {
		repo := NewRegistrationRepository()
		require.NoError(t, repo.CreateWithCapacity(ctx, newRegistration("e1", "a1"), 2))
		require.NoError(t, repo.CreateWithCapacity(ctx, newRegistration("e1", "a2"), 2))
		assert.ErrorIs(t, repo.CreateWithCapacity(ctx, newRegistration("e1", "a3"), 2), domain.ErrCapacityExceeded)
	})

	t.Run("zero limit is unbounded", func(t *testing.T) {
		repo := NewRegistrationRepository()
		for _, attendeeID := range []string{"a1", "a2", "a3", "a4"} {
			require.NoError(t, repo.CreateWithCapacity(ctx, newRegistration("e1", attendeeID), 0))
		}
	})

	t.Run("other events do not consume the limit", func(t *testing.T) {
		repo := NewRegistrationRepository()
		require.NoError(t, repo.Create(ctx, newRegistration("e2", "a1")))
		require.NoError(t, repo.CreateWithCapacity(ctx, newRegistration("e1", "a1"), 1))
	})
}

// Concurrent inserts must never overshoot the capacity: the count and the
// insert happen under one lock, mirroring the row-lock transaction in the
// postgres implementation.
func TestRegistrationRepositoryCapacityUnderContention(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository()
	const limit = 5
	const racers = 20

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg := newRegistration("e1", "a"+string(rune('A'+i)))
			errs[i] = repo.CreateWithCapacity(ctx, reg, limit)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, domain.ErrCapacityExceeded):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, limit, admitted)

	count, err := repo.CountByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(limit), count)
}
