package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

// IdentityResolver decides whether submitted attendee data refers to a new
// person or an existing one. Matching is exact and ordered: a caller-asserted
// id wins, then exact phone number, then exact name with a case/whitespace
// insensitive place of residence. It is the sole writer of attendee records
// on the door and bulk-import paths.
type IdentityResolver struct {
	attendeeRepo output.AttendeeRepository
}

func NewIdentityResolver(attendeeRepo output.AttendeeRepository) *IdentityResolver {
	return &IdentityResolver{attendeeRepo: attendeeRepo}
}

// Resolve returns the id of the attendee the input refers to, creating a new
// record when nothing matches. created reports whether a record was created.
// A matched or asserted attendee has its mutable fields overwritten with the
// input and its first-time flag set to opts.IsFirstTimeGuest.
func (r *IdentityResolver) Resolve(ctx context.Context, userID string, in input.AttendeeInput, opts input.IdentityOptions) (id string, created bool, err error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", false, fmt.Errorf("%w: attendee name", domain.ErrValidation)
	}
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.PlaceOfResidence = strings.TrimSpace(in.PlaceOfResidence)

	if opts.UseExistingAttendee && opts.ExistingAttendeeID != "" {
		// The asserted id is authoritative; an id that does not exist is a
		// hard failure rather than a silent fall-through.
		attendee, err := r.attendeeRepo.FindByID(ctx, opts.ExistingAttendeeID)
		if err != nil {
			return "", false, err
		}
		if err := r.overwrite(ctx, attendee, in, opts.IsFirstTimeGuest); err != nil {
			return "", false, err
		}
		return attendee.ID, false, nil
	}

	match, err := r.findMatch(ctx, in)
	if err != nil {
		return "", false, err
	}
	if match != nil {
		if err := r.overwrite(ctx, match, in, opts.IsFirstTimeGuest); err != nil {
			return "", false, err
		}
		return match.ID, false, nil
	}

	attendee := &entities.Attendee{
		Name:             in.Name,
		PlaceOfResidence: in.PlaceOfResidence,
		PhoneNumber:      in.PhoneNumber,
		Email:            in.Email,
		Gender:           in.Gender,
		IsFirstTimeGuest: opts.IsFirstTimeGuest,
		RegisteredBy:     userID,
	}
	if err := r.attendeeRepo.Create(ctx, attendee); err != nil {
		return "", false, fmt.Errorf("create attendee: %w", err)
	}
	return attendee.ID, true, nil
}

// findMatch applies the two matching strategies in order: exact phone number
// first, then exact name filtered by folded place of residence.
func (r *IdentityResolver) findMatch(ctx context.Context, in input.AttendeeInput) (*entities.Attendee, error) {
	if in.PhoneNumber != "" {
		attendee, err := r.attendeeRepo.FindByPhone(ctx, in.PhoneNumber)
		if err == nil {
			return attendee, nil
		}
		if !errors.Is(err, domain.ErrAttendeeNotFound) {
			return nil, fmt.Errorf("find attendee by phone: %w", err)
		}
	}
	if in.PlaceOfResidence == "" {
		return nil, nil
	}
	candidates, err := r.attendeeRepo.FindByName(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("find attendees by name: %w", err)
	}
	for i := range candidates {
		if strings.EqualFold(strings.TrimSpace(candidates[i].PlaceOfResidence), in.PlaceOfResidence) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (r *IdentityResolver) overwrite(ctx context.Context, attendee *entities.Attendee, in input.AttendeeInput, isFirstTimeGuest bool) error {
	attendee.Name = in.Name
	attendee.PlaceOfResidence = in.PlaceOfResidence
	attendee.PhoneNumber = in.PhoneNumber
	attendee.Email = in.Email
	attendee.Gender = in.Gender
	attendee.IsFirstTimeGuest = isFirstTimeGuest
	if err := r.attendeeRepo.Update(ctx, attendee); err != nil {
		return fmt.Errorf("update attendee: %w", err)
	}
	return nil
}

// clearFirstTimeGuest flips an attendee's first-time flag to false after their
// first recorded attendance anywhere. Idempotent.
func clearFirstTimeGuest(ctx context.Context, repo output.AttendeeRepository, attendeeID string) error {
	attendee, err := repo.FindByID(ctx, attendeeID)
	if err != nil {
		return fmt.Errorf("find attendee: %w", err)
	}
	if !attendee.IsFirstTimeGuest {
		return nil
	}
	if err := repo.SetFirstTimeGuest(ctx, attendeeID, false); err != nil {
		return fmt.Errorf("clear first-time flag: %w", err)
	}
	return nil
}
