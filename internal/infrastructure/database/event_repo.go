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

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, description, date, start_time, end_time, location, max_capacity, is_active, created_by, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, name, description, date, start_time, end_time, location, max_capacity, is_active, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		event.ID, event.Name, event.Description, event.Date, event.StartTime, event.EndTime,
		event.Location, event.MaxCapacity, event.IsActive, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ` + eventColumns + ` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *EventRepository) FindAll(ctx context.Context, includeInactive bool) ([]entities.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC, created_at DESC`
	if !includeInactive {
		query = `SELECT ` + eventColumns + ` FROM events WHERE is_active ORDER BY date DESC, created_at DESC`
	}
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *EventRepository) FindByDateRange(ctx context.Context, from, to string) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ` + eventColumns + ` FROM events WHERE date >= $1 AND date <= $2 ORDER BY date DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("find events by date range: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	event.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx,
		`UPDATE events
		 SET name = $2, description = $3, date = $4, start_time = $5, end_time = $6,
		     location = $7, max_capacity = $8, is_active = $9, updated_at = $10
		 WHERE id = $1`,
		event.ID, event.Name, event.Description, event.Date, event.StartTime, event.EndTime,
		event.Location, event.MaxCapacity, event.IsActive, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var e entities.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.StartTime, &e.EndTime,
		&e.Location, &e.MaxCapacity, &e.IsActive, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]entities.Event, error) {
	var out []entities.Event
	for rows.Next() {
		var e entities.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.StartTime, &e.EndTime,
			&e.Location, &e.MaxCapacity, &e.IsActive, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
