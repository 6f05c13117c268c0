package compliance

import (
	"fmt"

	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
)

// Aggregate computes worked-time totals over a set of time entries.
//
// Only completed entries are counted; open sessions are excluded from
// totals and surfaced separately by callers. Each entry is attributed
// wholly to the calendar date of its start timestamp in the recording
// timezone; an entry spanning midnight is NOT split across days. This is a
// known limitation of day attribution, kept deliberately.
//
// Accumulation happens in seconds; hours are derived by dividing at the
// end, so repeated calls with identical input produce identical output.
func Aggregate(entries []timesheet.TimeEntry, period compliance.Period) (compliance.AggregateResult, error) {
	if err := period.Validate(); err != nil {
		return compliance.AggregateResult{}, err
	}

	result := compliance.AggregateResult{
		DailyHours:  make(map[string]float64),
		WeeklyHours: make(map[string]float64),
	}

	for _, entry := range entries {
		if entry.IsOpen() {
			continue
		}
		if err := entry.ValidateInterval(); err != nil {
			return compliance.AggregateResult{}, fmt.Errorf("entry %s: %w", entry.ID, err)
		}

		seconds := entry.Duration().Seconds()
		result.TotalSeconds += seconds

		dayKey := entry.StartTime.Format("2006-01-02")
		result.DailyHours[dayKey] += seconds / 3600

		isoYear, isoWeek := entry.StartTime.ISOWeek()
		weekKey := WeekKey(isoYear, isoWeek)
		result.WeeklyHours[weekKey] += seconds / 3600
	}

	return result, nil
}

// WeekKey formats an ISO-8601 year and week number as a joint map key.
// The ISO year is used, not the calendar year: ISO week 1 can contain days
// of the prior calendar year.
func WeekKey(isoYear, isoWeek int) string {
	return fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
}
