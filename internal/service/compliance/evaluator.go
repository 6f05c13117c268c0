package compliance

import (
	"sort"

	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
)

// Evaluate applies the working-time rules to a user's entries and their
// aggregate totals.
//
// Rest rule: completed entries are sorted by start time; for each adjacent
// pair whose end and start fall on different calendar dates, a gap shorter
// than MinDailyRestHours counts one violation. Pairs on the same calendar
// date are exempt: a short gap inside a split shift is not a rest-period
// breach under this policy.
//
// Weekly rule: each ISO week whose aggregated hours exceed MaxWeeklyHours
// counts one violation; the violating weeks are retained for reporting.
//
// Evaluate has no side effects and reads no clock.
func Evaluate(entries []timesheet.TimeEntry, agg compliance.AggregateResult, thresholds compliance.Thresholds) compliance.ViolationReport {
	report := compliance.ViolationReport{}

	completed := make([]timesheet.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsOpen() {
			completed = append(completed, entry)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].StartTime.Before(completed[j].StartTime)
	})

	for i := 0; i+1 < len(completed); i++ {
		current := completed[i]
		next := completed[i+1]

		endDate := current.EndTime.Format("2006-01-02")
		startDate := next.StartTime.Format("2006-01-02")
		if endDate == startDate {
			continue
		}

		restHours := next.StartTime.Sub(*current.EndTime).Hours()
		if restHours < thresholds.MinDailyRestHours {
			report.RestViolations++
		}
	}

	for week, hours := range agg.WeeklyHours {
		if hours > thresholds.MaxWeeklyHours {
			report.WeeklyViolations++
			report.ViolatingWeeks = append(report.ViolatingWeeks, week)
		}
	}
	sort.Strings(report.ViolatingWeeks)

	return report
}
