package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
	"github.com/worktide/timetrack-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

// rosterConcurrency bounds the fan-out of per-user report computation.
const rosterConcurrency = 8

type ComplianceServiceImpl struct {
	entryRepo        timesheet.TimeEntryRepository
	userRepo         user.UserRepository
	thresholds       compliance.Thresholds
	standardDayHours float64
	loc              *time.Location
}

func NewComplianceService(
	entryRepo timesheet.TimeEntryRepository,
	userRepo user.UserRepository,
	thresholds compliance.Thresholds,
	standardDayHours float64,
	loc *time.Location,
) compliance.ComplianceService {
	if loc == nil {
		loc = time.UTC
	}
	return &ComplianceServiceImpl{
		entryRepo:        entryRepo,
		userRepo:         userRepo,
		thresholds:       thresholds,
		standardDayHours: standardDayHours,
		loc:              loc,
	}
}

// resolvePeriod applies the default reporting window: the current calendar
// month, first through last day, with the end bound at 23:59:59 local.
func (s *ComplianceServiceImpl) resolvePeriod(period *compliance.Period) (compliance.Period, error) {
	if period == nil {
		return compliance.MonthOf(time.Now().In(s.loc)), nil
	}
	if err := period.Validate(); err != nil {
		return compliance.Period{}, err
	}
	return *period, nil
}

// ReportForUser implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) ReportForUser(ctx context.Context, userID string, period *compliance.Period) (compliance.ComplianceReport, error) {
	p, err := s.resolvePeriod(period)
	if err != nil {
		return compliance.ComplianceReport{}, err
	}

	entries, err := s.entryRepo.GetByUserAndPeriod(ctx, userID, p.Start, p.End)
	if err != nil {
		return compliance.ComplianceReport{}, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	agg, err := Aggregate(entries, p)
	if err != nil {
		return compliance.ComplianceReport{}, err
	}
	violations := Evaluate(entries, agg, s.thresholds)

	return compliance.ComplianceReport{
		PeriodStart:      p.Start,
		PeriodEnd:        p.End,
		TotalHours:       agg.TotalSeconds / 3600,
		DailyHours:       agg.DailyHours,
		WeeklyHours:      agg.WeeklyHours,
		RestViolations:   violations.RestViolations,
		WeeklyViolations: violations.WeeklyViolations,
		ViolatingWeeks:   violations.ViolatingWeeks,
		IsCompliant:      violations.RestViolations == 0 && violations.WeeklyViolations == 0,
	}, nil
}

// ReportForRoster implements compliance.ComplianceService. A failing user
// is reported inline with an error marker; the rest of the roster still
// computes.
func (s *ComplianceServiceImpl) ReportForRoster(ctx context.Context, period *compliance.Period) ([]compliance.UserReport, error) {
	p, err := s.resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active users: %w", err)
	}

	results := make([]compliance.UserReport, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterConcurrency)

	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			report, err := s.ReportForUser(gctx, u.ID, &p)
			if err != nil {
				// Partial failure: record the marker, never abort the batch.
				msg := err.Error()
				results[i] = compliance.UserReport{UserID: u.ID, Error: &msg}
				return nil
			}
			results[i] = compliance.UserReport{UserID: u.ID, Report: &report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SummaryForUser implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) SummaryForUser(ctx context.Context, userID string, period *compliance.Period) (compliance.WorkSummary, error) {
	p, err := s.resolvePeriod(period)
	if err != nil {
		return compliance.WorkSummary{}, err
	}

	entries, err := s.entryRepo.GetByUserAndPeriod(ctx, userID, p.Start, p.End)
	if err != nil {
		return compliance.WorkSummary{}, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	agg, err := Aggregate(entries, p)
	if err != nil {
		return compliance.WorkSummary{}, err
	}

	summary := compliance.WorkSummary{
		EntryCount:   len(entries),
		BusinessDays: businessDaysIn(p),
		TotalHours:   agg.TotalSeconds / 3600,
	}

	for _, entry := range entries {
		start := entry.StartTime
		if summary.EarliestStart == nil || start.Before(*summary.EarliestStart) {
			summary.EarliestStart = &start
		}
		if entry.IsOpen() {
			continue
		}
		end := *entry.EndTime
		if summary.LatestEnd == nil || end.After(*summary.LatestEnd) {
			summary.LatestEnd = &end
		}
		if hours := entry.Duration().Hours(); hours > summary.LongestSessionHours {
			summary.LongestSessionHours = hours
		}
	}

	if summary.BusinessDays > 0 {
		summary.AverageHoursPerDay = summary.TotalHours / float64(summary.BusinessDays)
	}
	standard := float64(summary.BusinessDays) * s.standardDayHours
	if summary.TotalHours > standard {
		summary.OvertimeHours = summary.TotalHours - standard
	}

	return summary, nil
}

// businessDaysIn counts Monday-Friday days in the period, inclusive.
func businessDaysIn(p compliance.Period) int {
	days := 0
	day := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, p.Start.Location())
	last := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, p.End.Location())
	for !day.After(last) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}
