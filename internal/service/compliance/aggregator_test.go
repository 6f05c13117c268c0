package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
)

func entry(id string, start time.Time, duration time.Duration) timesheet.TimeEntry {
	end := start.Add(duration)
	return timesheet.TimeEntry{
		ID:        id,
		UserID:    "user-1",
		StartTime: start,
		EndTime:   &end,
	}
}

func openEntry(id string, start time.Time) timesheet.TimeEntry {
	return timesheet.TimeEntry{
		ID:        id,
		UserID:    "user-1",
		StartTime: start,
	}
}

func januaryPeriod() compliance.Period {
	return compliance.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestAggregate_SumsCompletedEntries(t *testing.T) {
	entries := []timesheet.TimeEntry{
		entry("a", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), 8*time.Hour),
		entry("b", time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC), 6*time.Hour),
		entry("c", time.Date(2024, 1, 9, 17, 0, 0, 0, time.UTC), 2*time.Hour),
	}

	agg, err := Aggregate(entries, januaryPeriod())
	require.NoError(t, err)

	assert.Equal(t, float64(16*3600), agg.TotalSeconds)
	assert.Equal(t, 8.0, agg.DailyHours["2024-01-08"])
	assert.Equal(t, 8.0, agg.DailyHours["2024-01-09"])
	assert.Equal(t, 16.0, agg.WeeklyHours["2024-W02"])
}

func TestAggregate_ExcludesOpenEntries(t *testing.T) {
	entries := []timesheet.TimeEntry{
		entry("a", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), 4*time.Hour),
		openEntry("b", time.Date(2024, 1, 8, 14, 0, 0, 0, time.UTC)),
	}

	agg, err := Aggregate(entries, januaryPeriod())
	require.NoError(t, err)

	assert.Equal(t, float64(4*3600), agg.TotalSeconds)
	assert.Equal(t, 4.0, agg.DailyHours["2024-01-08"])
}

func TestAggregate_MidnightSpanAttributedToStartDate(t *testing.T) {
	// 22:00 Jan 8 to 04:00 Jan 9: all six hours land on Jan 8.
	entries := []timesheet.TimeEntry{
		entry("night", time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC), 6*time.Hour),
	}

	agg, err := Aggregate(entries, januaryPeriod())
	require.NoError(t, err)

	assert.Equal(t, 6.0, agg.DailyHours["2024-01-08"])
	assert.NotContains(t, agg.DailyHours, "2024-01-09")
}

func TestAggregate_ISOWeekKeyAtYearBoundary(t *testing.T) {
	// Dec 30 2024 is a Monday in ISO week 1 of 2025.
	period := compliance.Period{
		Start: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	entries := []timesheet.TimeEntry{
		entry("a", time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC), 8*time.Hour),
	}

	agg, err := Aggregate(entries, period)
	require.NoError(t, err)

	assert.Equal(t, 8.0, agg.WeeklyHours["2025-W01"])
	assert.NotContains(t, agg.WeeklyHours, "2024-W01")
}

func TestAggregate_Deterministic(t *testing.T) {
	entries := []timesheet.TimeEntry{
		entry("a", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), 7*time.Hour+23*time.Minute),
		entry("b", time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC), 9*time.Hour+41*time.Minute),
	}

	first, err := Aggregate(entries, januaryPeriod())
	require.NoError(t, err)
	second, err := Aggregate(entries, januaryPeriod())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_RejectsInvalidInterval(t *testing.T) {
	start := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	entries := []timesheet.TimeEntry{
		{ID: "bad", UserID: "user-1", StartTime: start, EndTime: &end},
	}

	_, err := Aggregate(entries, januaryPeriod())
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrInvalidInterval)
}

func TestAggregate_RejectsInvalidPeriod(t *testing.T) {
	period := compliance.Period{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := Aggregate(nil, period)
	assert.ErrorIs(t, err, compliance.ErrInvalidPeriod)
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2024-W02", WeekKey(2024, 2))
	assert.Equal(t, "2025-W01", WeekKey(2025, 1))
	assert.Equal(t, "0999-W52", WeekKey(999, 52))
}
