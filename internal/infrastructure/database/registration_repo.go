package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

type RegistrationRepository struct {
	db *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, event_id, attendee_id, registration_date, registration_time, registered_by, has_attended, attendance_time, created_at, updated_at`

const uniqueViolation = "23505"

func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	prepareRegistration(registration)
	_, err := r.db.Exec(ctx, insertRegistrationSQL, insertRegistrationArgs(registration)...)
	if err != nil {
		return mapInsertError(err)
	}
	return nil
}

// CreateWithCapacity inserts the registration inside one transaction that
// first takes a row-level lock on the event. The lock serialises concurrent
// registrations for the same event, so the count-then-insert cannot admit two
// attendees into the last slot.
func (r *RegistrationRepository) CreateWithCapacity(ctx context.Context, registration *entities.Registration, maxCapacity int) error {
	if maxCapacity <= 0 {
		return r.Create(ctx, registration)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var eventID string
	err = tx.QueryRow(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, registration.EventID).Scan(&eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var count int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, registration.EventID).Scan(&count)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if count >= int64(maxCapacity) {
		err = domain.ErrCapacityExceeded
		return err
	}

	prepareRegistration(registration)
	_, err = tx.Exec(ctx, insertRegistrationSQL, insertRegistrationArgs(registration)...)
	if err != nil {
		err = mapInsertError(err)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const insertRegistrationSQL = `INSERT INTO registrations (id, event_id, attendee_id, registration_date, registration_time, registered_by, has_attended, attendance_time, created_at, updated_at)
 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func prepareRegistration(registration *entities.Registration) {
	if registration.ID == "" {
		registration.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	registration.CreatedAt = now
	registration.UpdatedAt = now
}

func insertRegistrationArgs(registration *entities.Registration) []any {
	var attendanceTime *time.Time
	if !registration.AttendanceTime.IsZero() {
		attendanceTime = &registration.AttendanceTime
	}
	return []any{
		registration.ID, registration.EventID, registration.AttendeeID,
		registration.RegistrationDate, registration.RegistrationTime, registration.RegisteredBy,
		registration.HasAttended, attendanceTime, registration.CreatedAt, registration.UpdatedAt,
	}
}

func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyRegistered
	}
	return fmt.Errorf("insert registration: %w", err)
}

func (r *RegistrationRepository) FindByEventAndAttendee(ctx context.Context, eventID, attendeeID string) (*entities.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND attendee_id = $2`,
		eventID, attendeeID)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}
	return registration, nil
}

func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID string, attendedOnly bool) ([]entities.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY registration_time ASC`
	if attendedOnly {
		query = `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND has_attended ORDER BY registration_time ASC`
	}
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("find registrations by event: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *RegistrationRepository) FindByAttendee(ctx context.Context, attendeeID string) ([]entities.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + registrationColumns + ` FROM registrations WHERE attendee_id = $1 ORDER BY registration_time ASC`,
		attendeeID)
	if err != nil {
		return nil, fmt.Errorf("find registrations by attendee: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *RegistrationRepository) FindAll(ctx context.Context) ([]entities.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + registrationColumns + ` FROM registrations ORDER BY registration_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) MarkAttended(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE registrations SET has_attended = TRUE, attendance_time = $2, updated_at = now() WHERE id = $1`,
		id, at)
	if err != nil {
		return fmt.Errorf("mark attended: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func scanRegistration(row pgx.Row) (*entities.Registration, error) {
	var reg entities.Registration
	var attendanceTime *time.Time
	err := row.Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.RegistrationDate, &reg.RegistrationTime,
		&reg.RegisteredBy, &reg.HasAttended, &attendanceTime, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	if attendanceTime != nil {
		reg.AttendanceTime = *attendanceTime
	}
	return &reg, nil
}

func scanRegistrations(rows pgx.Rows) ([]entities.Registration, error) {
	var out []entities.Registration
	for rows.Next() {
		var reg entities.Registration
		var attendanceTime *time.Time
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.RegistrationDate, &reg.RegistrationTime,
			&reg.RegisteredBy, &reg.HasAttended, &attendanceTime, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		if attendanceTime != nil {
			reg.AttendanceTime = *attendanceTime
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}
