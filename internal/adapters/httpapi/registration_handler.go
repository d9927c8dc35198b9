package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/ports/input"
)

type attendeeInputJSON struct {
	Name             string `json:"name"`
	PlaceOfResidence string `json:"place_of_residence"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	Gender           string `json:"gender"`
}

type doorRegistrationRequest struct {
	Attendee            attendeeInputJSON `json:"attendee"`
	IsFirstTimeGuest    bool              `json:"is_first_time_guest"`
	UseExistingAttendee bool              `json:"use_existing_attendee"`
	ExistingAttendeeID  string            `json:"existing_attendee_id"`
}

type markAttendanceRequest struct {
	AttendeeID string `json:"attendee_id"`
}

func (a *API) registerAtDoor(w http.ResponseWriter, r *http.Request) {
	var req doorRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	registrationID, err := a.registrations.RegisterAtDoor(
		r.Context(), userID(r), chi.URLParam(r, "id"),
		input.AttendeeInput{
			Name:             req.Attendee.Name,
			PlaceOfResidence: req.Attendee.PlaceOfResidence,
			PhoneNumber:      req.Attendee.PhoneNumber,
			Email:            req.Attendee.Email,
			Gender:           domain.ParseGender(req.Attendee.Gender),
		},
		input.IdentityOptions{
			UseExistingAttendee: req.UseExistingAttendee,
			ExistingAttendeeID:  req.ExistingAttendeeID,
			IsFirstTimeGuest:    req.IsFirstTimeGuest,
		},
	)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"registration_id": registrationID})
}

func (a *API) markAttendance(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := a.registrations.MarkAttendance(r.Context(), chi.URLParam(r, "id"), req.AttendeeID); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) listRegistrations(w http.ResponseWriter, r *http.Request) {
	attendedOnly := r.URL.Query().Get("attended_only") == "true"
	registrations, err := a.registrations.EventRegistrations(r.Context(), chi.URLParam(r, "id"), attendedOnly)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	out := make([]registrationWithAttendeeJSON, len(registrations))
	for i := range registrations {
		out[i] = registrationWithAttendeeJSON{
			registrationJSON: registrationView(&registrations[i].Registration),
		}
		if registrations[i].Attendee != nil {
			v := attendeeView(registrations[i].Attendee)
			out[i].Attendee = &v
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) searchAttendees(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	attendees, err := a.registrations.SearchAttendees(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendeeViews(attendees))
}

func (a *API) attendeeByPhone(w http.ResponseWriter, r *http.Request) {
	attendee, err := a.registrations.AttendeeByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendeeView(attendee))
}

func (a *API) attendeeHistory(w http.ResponseWriter, r *http.Request) {
	history, err := a.registrations.AttendeeHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	out := attendeeHistoryJSON{
		Attendee:       attendeeView(&history.Attendee),
		Registrations:  make([]registrationWithEventJSON, len(history.Registrations)),
		TotalEvents:    history.TotalEvents,
		AttendedEvents: history.AttendedEvents,
	}
	for i := range history.Registrations {
		out.Registrations[i] = registrationWithEventJSON{
			registrationJSON: registrationView(&history.Registrations[i].Registration),
		}
		if history.Registrations[i].Event != nil {
			v := eventView(history.Registrations[i].Event)
			out.Registrations[i].Event = &v
		}
	}
	writeJSON(w, http.StatusOK, out)
}
