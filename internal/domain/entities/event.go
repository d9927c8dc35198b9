package entities

import "time"

// HasCapacityLimit reports whether registrations for the event are bounded.
func (e *Event) HasCapacityLimit() bool {
	return e.MaxCapacity > 0
}

type Event struct {
	ID          string
	Name        string
	Description string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM, empty = not set
	EndTime     string // HH:MM, empty = not set
	Location    string
	MaxCapacity int // 0 = unlimited
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
