package httpapi

import (
	"time"

	"github.com/kevpy/clj-registration/internal/domain/entities"
	"github.com/kevpy/clj-registration/internal/ports/input"
)

type attendeeJSON struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PlaceOfResidence string    `json:"place_of_residence,omitempty"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Email            string    `json:"email,omitempty"`
	Gender           string    `json:"gender"`
	IsFirstTimeGuest bool      `json:"is_first_time_guest"`
	RegisteredBy     string    `json:"registered_by"`
	CreatedAt        time.Time `json:"created_at"`
}

func attendeeView(a *entities.Attendee) attendeeJSON {
	return attendeeJSON{
		ID:               a.ID,
		Name:             a.Name,
		PlaceOfResidence: a.PlaceOfResidence,
		PhoneNumber:      a.PhoneNumber,
		Email:            a.Email,
		Gender:           string(a.Gender),
		IsFirstTimeGuest: a.IsFirstTimeGuest,
		RegisteredBy:     a.RegisteredBy,
		CreatedAt:        a.CreatedAt,
	}
}

func attendeeViews(attendees []entities.Attendee) []attendeeJSON {
	out := make([]attendeeJSON, len(attendees))
	for i := range attendees {
		out[i] = attendeeView(&attendees[i])
	}
	return out
}

type eventJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Location    string    `json:"location,omitempty"`
	MaxCapacity int       `json:"max_capacity,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func eventView(e *entities.Event) eventJSON {
	return eventJSON{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		MaxCapacity: e.MaxCapacity,
		IsActive:    e.IsActive,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

type eventWithCountsJSON struct {
	eventJSON
	RegistrationCount int `json:"registration_count"`
	AttendedCount     int `json:"attended_count"`
}

func eventWithCountsView(ec *input.EventWithCounts) eventWithCountsJSON {
	return eventWithCountsJSON{
		eventJSON:         eventView(&ec.Event),
		RegistrationCount: ec.RegistrationCount,
		AttendedCount:     ec.AttendedCount,
	}
}

type registrationJSON struct {
	ID               string     `json:"id"`
	EventID          string     `json:"event_id"`
	AttendeeID       string     `json:"attendee_id"`
	RegistrationDate string     `json:"registration_date"`
	RegistrationTime time.Time  `json:"registration_time"`
	RegisteredBy     string     `json:"registered_by"`
	HasAttended      bool       `json:"has_attended"`
	AttendanceTime   *time.Time `json:"attendance_time,omitempty"`
}

func registrationView(reg *entities.Registration) registrationJSON {
	out := registrationJSON{
		ID:               reg.ID,
		EventID:          reg.EventID,
		AttendeeID:       reg.AttendeeID,
		RegistrationDate: reg.RegistrationDate,
		RegistrationTime: reg.RegistrationTime,
		RegisteredBy:     reg.RegisteredBy,
		HasAttended:      reg.HasAttended,
	}
	if !reg.AttendanceTime.IsZero() {
		t := reg.AttendanceTime
		out.AttendanceTime = &t
	}
	return out
}

type registrationWithAttendeeJSON struct {
	registrationJSON
	Attendee *attendeeJSON `json:"attendee,omitempty"`
}

type registrationWithEventJSON struct {
	registrationJSON
	Event *eventJSON `json:"event,omitempty"`
}

type attendeeHistoryJSON struct {
	Attendee       attendeeJSON                `json:"attendee"`
	Registrations  []registrationWithEventJSON `json:"registrations"`
	TotalEvents    int                         `json:"total_events"`
	AttendedEvents int                         `json:"attended_events"`
}
