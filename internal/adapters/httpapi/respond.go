package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kevpy/clj-registration/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusAndKey maps a domain error to its HTTP status and i18n message key.
func statusAndKey(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "error.validation"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "error.unauthenticated"
	case errors.Is(err, domain.ErrEventNotFoundOrInactive):
		return http.StatusNotFound, "error.event_not_found_or_inactive"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "error.event_not_found"
	case errors.Is(err, domain.ErrAttendeeNotFound):
		return http.StatusNotFound, "error.attendee_not_found"
	case errors.Is(err, domain.ErrNotRegistered):
		return http.StatusNotFound, "error.not_registered"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, "error.capacity_exceeded"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, "error.already_registered"
	case errors.Is(err, domain.ErrAlreadyAttended):
		return http.StatusConflict, "error.already_attended"
	case errors.Is(err, domain.ErrCannotReduceCapacity):
		return http.StatusConflict, "error.cannot_reduce_capacity"
	default:
		return http.StatusInternalServerError, ""
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, key := statusAndKey(err)
	if key == "" {
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: a.translator.T(locale(r), key, nil)})
}

func (a *API) writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
