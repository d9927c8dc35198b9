package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

// ImportService replays door-registration identity and registration logic
// over a batch of externally supplied rows. Rows commit independently: any
// per-row failure becomes an error string and the batch continues. Capacity
// is intentionally not enforced per row; imports represent bulk retroactive
// entry.
type ImportService struct {
	resolver         *IdentityResolver
	attendeeRepo     output.AttendeeRepository
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	clock            output.Clock
	translator       output.T
}

func NewImportService(
	resolver *IdentityResolver,
	attendeeRepo output.AttendeeRepository,
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	clock output.Clock,
	translator output.T,
) *ImportService {
	return &ImportService{
		resolver:         resolver,
		attendeeRepo:     attendeeRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		clock:            clock,
		translator:       translator,
	}
}

// ImportRows processes the batch against the selected event. Only a failure
// to determine the target event aborts the whole batch; rows already
// committed stay committed.
func (s *ImportService) ImportRows(ctx context.Context, userID string, req input.ImportRequest) (*input.ImportResult, error) {
	if strings.TrimSpace(req.Mapping.Name) == "" {
		return nil, fmt.Errorf("%w: name column mapping", domain.ErrValidation)
	}
	eventID, err := s.targetEvent(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	result := &input.ImportResult{EventID: eventID, Errors: []string{}}
	counted := make(map[string]struct{}) // attendee ids already tallied this batch
	now := s.clock.Now()
	today := now.Format(dateLayout)

	for _, row := range req.Rows {
		name := strings.TrimSpace(stringField(row, req.Mapping.Name))
		if name == "" {
			result.Errors = append(result.Errors, s.translator.T(req.Locale, "import.row.blank_name", nil))
			continue
		}

		attendee := input.AttendeeInput{
			Name:             name,
			PhoneNumber:      strings.TrimSpace(stringField(row, req.Mapping.Phone)),
			PlaceOfResidence: strings.TrimSpace(stringField(row, req.Mapping.Location)),
			Gender:           domain.GenderOther,
		}
		opts := input.IdentityOptions{IsFirstTimeGuest: firstTimeGuestValue(row, req.Mapping.FirstTimeGuest)}

		attendeeID, _, err := s.resolver.Resolve(ctx, userID, attendee, opts)
		if err != nil {
			result.Errors = append(result.Errors, s.rowError(req.Locale, name, err))
			continue
		}
		if _, ok := counted[attendeeID]; !ok {
			counted[attendeeID] = struct{}{}
			result.CreatedOrUpdated++
		}

		registration := &entities.Registration{
			EventID:          eventID,
			AttendeeID:       attendeeID,
			RegistrationDate: today,
			RegistrationTime: now,
			RegisteredBy:     userID,
			HasAttended:      true,
			AttendanceTime:   now,
		}
		if err := s.registrationRepo.Create(ctx, registration); err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				result.Errors = append(result.Errors, s.translator.T(req.Locale, "import.row.already_registered", map[string]any{"Name": name}))
			} else {
				result.Errors = append(result.Errors, s.rowError(req.Locale, name, err))
			}
			continue
		}
		result.Registered++

		if err := clearFirstTimeGuest(ctx, s.attendeeRepo, attendeeID); err != nil {
			result.Errors = append(result.Errors, s.rowError(req.Locale, name, err))
		}
	}
	return result, nil
}

// targetEvent resolves the batch's event: an existing active event by id, or
// a freshly created one from the supplied details.
func (s *ImportService) targetEvent(ctx context.Context, userID string, req input.ImportRequest) (string, error) {
	switch {
	case req.NewEvent != nil:
		event := &entities.Event{
			Name:        strings.TrimSpace(req.NewEvent.Name),
			Description: req.NewEvent.Description,
			Date:        req.NewEvent.Date,
			StartTime:   req.NewEvent.StartTime,
			EndTime:     req.NewEvent.EndTime,
			Location:    req.NewEvent.Location,
			MaxCapacity: req.NewEvent.MaxCapacity,
			IsActive:    true,
			CreatedBy:   userID,
		}
		if event.Name == "" || event.Date == "" {
			return "", fmt.Errorf("%w: event name and date", domain.ErrValidation)
		}
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return "", fmt.Errorf("create event: %w", err)
		}
		return event.ID, nil
	case req.EventID != "":
		event, err := s.eventRepo.FindByID(ctx, req.EventID)
		if err != nil || !event.IsActive {
			return "", domain.ErrEventNotFoundOrInactive
		}
		return event.ID, nil
	default:
		return "", fmt.Errorf("%w: an existing event id or new event details", domain.ErrValidation)
	}
}

func (s *ImportService) rowError(locale, name string, err error) string {
	return s.translator.T(locale, "import.row.failed", map[string]any{"Name": name, "Error": err.Error()})
}

// stringField reads a mapped column as a string. Spreadsheet parsers hand
// numeric cells over as numbers, so those are rendered back to text.
func stringField(row map[string]any, key string) string {
	if key == "" {
		return ""
	}
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// firstTimeGuestValue coerces the mapped first-time column to a bool.
// Booleans pass through, known yes/no strings map accordingly, numbers map to
// their truthiness, everything else defaults to false (returning guest).
func firstTimeGuestValue(row map[string]any, key string) bool {
	if key == "" {
		return false
	}
	switch v := row[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "y":
			return true
		case "false", "no", "0", "n":
			return false
		default:
			return false
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return false
	}
}
