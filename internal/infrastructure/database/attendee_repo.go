package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

var _ output.AttendeeRepository = (*AttendeeRepository)(nil)

type AttendeeRepository struct {
	db *pgxpool.Pool
}

func NewAttendeeRepository(db *pgxpool.Pool) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

const attendeeColumns = `id, name, place_of_residence, phone_number, email, gender, is_first_time_guest, registered_by, created_at, updated_at`

func (r *AttendeeRepository) Create(ctx context.Context, attendee *entities.Attendee) error {
	if attendee.ID == "" {
		attendee.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now
	_, err := r.db.Exec(ctx,
		`INSERT INTO attendees (id, name, place_of_residence, phone_number, email, gender, is_first_time_guest, registered_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		attendee.ID, attendee.Name, attendee.PlaceOfResidence, attendee.PhoneNumber, attendee.Email,
		string(attendee.Gender), attendee.IsFirstTimeGuest, attendee.RegisteredBy, attendee.CreatedAt, attendee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}
	return nil
}

func (r *AttendeeRepository) FindByID(ctx context.Context, id string) (*entities.Attendee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ` + attendeeColumns + ` FROM attendees WHERE id = $1`, id)
	return scanAttendee(row)
}

func (r *AttendeeRepository) FindByPhone(ctx context.Context, phone string) (*entities.Attendee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ` + attendeeColumns + ` FROM attendees WHERE phone_number = $1 ORDER BY created_at ASC LIMIT 1`, phone)
	return scanAttendee(row)
}

func (r *AttendeeRepository) FindByName(ctx context.Context, name string) ([]entities.Attendee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + attendeeColumns + ` FROM attendees WHERE name = $1 ORDER BY created_at ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("find attendees by name: %w", err)
	}
	defer rows.Close()
	return scanAttendees(rows)
}

func (r *AttendeeRepository) SearchByName(ctx context.Context, term string, limit int) ([]entities.Attendee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + attendeeColumns + ` FROM attendees WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC LIMIT $2`,
		term, limit)
	if err != nil {
		return nil, fmt.Errorf("search attendees: %w", err)
	}
	defer rows.Close()
	return scanAttendees(rows)
}

func (r *AttendeeRepository) FindAll(ctx context.Context) ([]entities.Attendee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + attendeeColumns + ` FROM attendees ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()
	return scanAttendees(rows)
}

func (r *AttendeeRepository) Update(ctx context.Context, attendee *entities.Attendee) error {
	attendee.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx,
		`UPDATE attendees
		 SET name = $2, place_of_residence = $3, phone_number = $4, email = $5, gender = $6,
		     is_first_time_guest = $7, updated_at = $8
		 WHERE id = $1`,
		attendee.ID, attendee.Name, attendee.PlaceOfResidence, attendee.PhoneNumber, attendee.Email,
		string(attendee.Gender), attendee.IsFirstTimeGuest, attendee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendeeNotFound
	}
	return nil
}

func (r *AttendeeRepository) SetFirstTimeGuest(ctx context.Context, id string, firstTime bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE attendees SET is_first_time_guest = $2, updated_at = now() WHERE id = $1`,
		id, firstTime)
	if err != nil {
		return fmt.Errorf("set first-time flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendeeNotFound
	}
	return nil
}

func scanAttendee(row pgx.Row) (*entities.Attendee, error) {
	var a entities.Attendee
	var gender string
	err := row.Scan(&a.ID, &a.Name, &a.PlaceOfResidence, &a.PhoneNumber, &a.Email,
		&gender, &a.IsFirstTimeGuest, &a.RegisteredBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("scan attendee: %w", err)
	}
	a.Gender = domain.Gender(gender)
	return &a, nil
}

func scanAttendees(rows pgx.Rows) ([]entities.Attendee, error) {
	var out []entities.Attendee
	for rows.Next() {
		var a entities.Attendee
		var gender string
		if err := rows.Scan(&a.ID, &a.Name, &a.PlaceOfResidence, &a.PhoneNumber, &a.Email,
			&gender, &a.IsFirstTimeGuest, &a.RegisteredBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		a.Gender = domain.Gender(gender)
		out = append(out, a)
	}
	return out, rows.Err()
}
