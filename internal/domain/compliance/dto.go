package compliance

import (
	"time"
)

// Period is a closed report window. End is inclusive: callers that want a
// whole month pass the last day at 23:59:59.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ErrInvalidPeriod
	}
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// MonthOf returns the calendar month containing t in t's location, bounded
// at 23:59:59 on the last day.
func MonthOf(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Period{Start: start, End: end}
}

// Thresholds are the regulatory limits applied by Evaluate. They are
// explicit arguments, never ambient state, so jurisdictions can differ per
// call.
type Thresholds struct {
	MaxWeeklyHours    float64
	MinDailyRestHours float64
}

// DefaultThresholds returns the EU Working Time Directive limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxWeeklyHours:    48,
		MinDailyRestHours: 11,
	}
}

// AggregateResult holds worked-time totals for one user and period.
// DailyHours is keyed by the entry's start date (YYYY-MM-DD); WeeklyHours by
// ISO year and week (YYYY-Www), keyed jointly because ISO week 1 may contain
// days of the prior calendar year.
type AggregateResult struct {
	TotalSeconds float64
	DailyHours   map[string]float64
	WeeklyHours  map[string]float64
}

// ViolationReport is the outcome of evaluating the regulatory rules.
type ViolationReport struct {
	RestViolations   int
	WeeklyViolations int
	ViolatingWeeks   []string
}

// ComplianceReport is the externally consumed report for one user.
type ComplianceReport struct {
	PeriodStart      time.Time          `json:"period_start"`
	PeriodEnd        time.Time          `json:"period_end"`
	TotalHours       float64            `json:"total_hours"`
	DailyHours       map[string]float64 `json:"daily_hours"`
	WeeklyHours      map[string]float64 `json:"weekly_hours"`
	RestViolations   int                `json:"rest_period_violations"`
	WeeklyViolations int                `json:"weekly_hour_violations"`
	ViolatingWeeks   []string           `json:"violating_weeks"`
	IsCompliant      bool               `json:"is_compliant"`
}

// UserReport pairs a roster member with their report or the error that
// prevented computing it. Exactly one of Report and Error is set.
type UserReport struct {
	UserID string            `json:"user_id"`
	Report *ComplianceReport `json:"report,omitempty"`
	Error  *string           `json:"error,omitempty"`
}

// WorkSummary supplements the compliance report with descriptive statistics
// over the same period.
type WorkSummary struct {
	EntryCount          int        `json:"entry_count"`
	BusinessDays        int        `json:"business_days"`
	TotalHours          float64    `json:"total_hours"`
	AverageHoursPerDay  float64    `json:"average_hours_per_business_day"`
	LongestSessionHours float64    `json:"longest_session_hours"`
	EarliestStart       *time.Time `json:"earliest_start_time"`
	LatestEnd           *time.Time `json:"latest_end_time"`
	OvertimeHours       float64    `json:"overtime_hours"`
}
