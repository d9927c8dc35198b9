package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kevpy/clj-registration/internal/domain"
)

func (a *API) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.analytics.DashboardStats(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_events":         stats.TotalEvents,
		"active_events":        stats.ActiveEvents,
		"todays_events":        stats.TodaysEvents,
		"total_attendees":      stats.TotalAttendees,
		"total_registrations":  stats.TotalRegistrations,
		"todays_registrations": stats.TodaysRegistrations,
		"todays_attendance":    stats.TodaysAttendance,
		"gender_stats":         stats.GenderStats,
	})
}

func (a *API) eventAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := a.analytics.EventAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"event":                 eventView(&analytics.Event),
		"total_registrations":   analytics.TotalRegistrations,
		"attended_count":        analytics.AttendedCount,
		"attendance_rate":       analytics.AttendanceRate,
		"gender_stats":          analytics.GenderStats,
		"guest_type_stats":      analytics.GuestTypeStats,
		"registrations_by_date": analytics.RegistrationsByDate,
	})
}

func (a *API) monthlyStats(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		a.writeError(w, r, domain.ErrValidation)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		a.writeError(w, r, domain.ErrValidation)
		return
	}
	stats, err := a.analytics.MonthlyStats(r.Context(), year, month)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	events := make([]eventWithCountsJSON, len(stats.Events))
	for i := range stats.Events {
		events[i] = eventWithCountsView(&stats.Events[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":                stats.Year,
		"month":               stats.Month,
		"event_count":         stats.EventCount,
		"total_registrations": stats.TotalRegistrations,
		"total_attendance":    stats.TotalAttendance,
		"events":              events,
	})
}
