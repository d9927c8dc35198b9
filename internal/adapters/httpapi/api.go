// Package httpapi exposes the application's use cases over HTTP with chi.
// It owns JSON translation and error→status mapping; authentication happens
// upstream and reaches this layer as an identity header.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kevpy/clj-registration/internal/ports/input"
	"github.com/kevpy/clj-registration/internal/ports/output"
)

type API struct {
	registrations input.RegistrationUseCase
	imports       input.ImportUseCase
	events        input.EventUseCase
	analytics     input.AnalyticsUseCase
	translator    output.T
}

func New(
	registrations input.RegistrationUseCase,
	imports input.ImportUseCase,
	events input.EventUseCase,
	analytics input.AnalyticsUseCase,
	translator output.T,
) *API {
	return &API{
		registrations: registrations,
		imports:       imports,
		events:        events,
		analytics:     analytics,
		translator:    translator,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(a.requireUser)

		r.Route("/events", func(r chi.Router) {
			r.Post("/", a.createEvent)
			r.Get("/", a.listEvents)
			r.Get("/{id}", a.getEvent)
			r.Patch("/{id}", a.updateEvent)
			r.Post("/{id}/door-registrations", a.registerAtDoor)
			r.Post("/{id}/attendance", a.markAttendance)
			r.Get("/{id}/registrations", a.listRegistrations)
		})

		r.Route("/attendees", func(r chi.Router) {
			r.Get("/search", a.searchAttendees)
			r.Get("/by-phone", a.attendeeByPhone)
			r.Get("/{id}/history", a.attendeeHistory)
		})

		r.Post("/imports", a.importRows)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", a.dashboardStats)
			r.Get("/events/{id}", a.eventAnalytics)
			r.Get("/monthly", a.monthlyStats)
		})
	})

	return r
}
