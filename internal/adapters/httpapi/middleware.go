package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/kevpy/clj-registration/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireUser derives the calling user's id from the identity header set by
// the authenticating gateway. Every mutation stamps this id; requests without
// one are rejected.
func (a *API) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if id == "" {
			a.writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// locale picks the caller's preferred locale; go-i18n resolves the tag and
// falls back to the default.
func locale(r *http.Request) string {
	return r.Header.Get("Accept-Language")
}
