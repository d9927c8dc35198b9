package httpapi

import (
	"net/http"

	"github.com/kevpy/clj-registration/internal/ports/input"
)

type columnMappingJSON struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	FirstTimeGuest string `json:"first_time_guest"`
}

type importRequest struct {
	Rows     []map[string]any    `json:"rows"`
	Mapping  columnMappingJSON   `json:"mapping"`
	EventID  string              `json:"event_id"`
	NewEvent *createEventRequest `json:"new_event"`
}

type importResponse struct {
	EventID          string   `json:"event_id"`
	CreatedOrUpdated int      `json:"created_or_updated"`
	Registered       int      `json:"registered"`
	Errors           []string `json:"errors"`
}

func (a *API) importRows(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	in := input.ImportRequest{
		Rows: req.Rows,
		Mapping: input.ColumnMapping{
			Name:           req.Mapping.Name,
			Phone:          req.Mapping.Phone,
			Location:       req.Mapping.Location,
			FirstTimeGuest: req.Mapping.FirstTimeGuest,
		},
		EventID: req.EventID,
		Locale:  locale(r),
	}
	if req.NewEvent != nil {
		in.NewEvent = &input.NewEvent{
			Name:        req.NewEvent.Name,
			Description: req.NewEvent.Description,
			Date:        req.NewEvent.Date,
			StartTime:   req.NewEvent.StartTime,
			EndTime:     req.NewEvent.EndTime,
			Location:    req.NewEvent.Location,
			MaxCapacity: req.NewEvent.MaxCapacity,
		}
	}
	result, err := a.imports.ImportRows(r.Context(), userID(r), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		EventID:          result.EventID,
		CreatedOrUpdated: result.CreatedOrUpdated,
		Registered:       result.Registered,
		Errors:           result.Errors,
	})
}
