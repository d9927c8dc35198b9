package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kevpy/clj-registration/internal/ports/input"
)

type createEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	MaxCapacity int    `json:"max_capacity"`
}

type updateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
	MaxCapacity *int    `json:"max_capacity"`
	IsActive    *bool   `json:"is_active"`
}

func (a *API) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	event, err := a.events.CreateEvent(r.Context(), userID(r), input.NewEvent{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventView(event))
}

func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	events, err := a.events.ListEvents(r.Context(), includeInactive)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	out := make([]eventWithCountsJSON, len(events))
	for i := range events {
		out[i] = eventWithCountsView(&events[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := a.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventWithCountsView(event))
}

func (a *API) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	event, err := a.events.UpdateEvent(r.Context(), chi.URLParam(r, "id"), input.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
		IsActive:    req.IsActive,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventView(event))
}
