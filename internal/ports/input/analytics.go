package input

import (
	"context"

	"github.com/kevpy/clj-registration/internal/domain"
	"github.com/kevpy/clj-registration/internal/domain/entities"
)

// DashboardStats is the front-page rollup across all records.
type DashboardStats struct {
	TotalEvents         int
	ActiveEvents        int
	TodaysEvents        int
	TotalAttendees      int
	TotalRegistrations  int
	TodaysRegistrations int
	TodaysAttendance    int
	GenderStats         map[domain.Gender]int
}

// EventAnalytics breaks one event down by attendance and demographics.
type EventAnalytics struct {
	Event               entities.Event
	TotalRegistrations  int
	AttendedCount       int
	AttendanceRate      int // percentage, rounded
	GenderStats         map[domain.Gender]int
	GuestTypeStats      map[string]int // "firstTime" / "returning"
	RegistrationsByDate map[string]int
}

// MonthlyStats rolls events and their registrations up for one month.
type MonthlyStats struct {
	Year               int
	Month              int
	EventCount         int
	TotalRegistrations int
	TotalAttendance    int
	Events             []EventWithCounts
}

type AnalyticsUseCase interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	EventAnalytics(ctx context.Context, eventID string) (*EventAnalytics, error)
	MonthlyStats(ctx context.Context, year, month int) (*MonthlyStats, error)
}
