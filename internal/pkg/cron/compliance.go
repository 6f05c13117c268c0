package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
)

// ComplianceJobs runs the periodic roster-wide working-time scan and logs
// every user found out of compliance for the current month.
type ComplianceJobs struct {
	complianceSvc compliance.ComplianceService
	interval      time.Duration
}

func NewComplianceJobs(complianceSvc compliance.ComplianceService, interval time.Duration) *ComplianceJobs {
	return &ComplianceJobs{
		complianceSvc: complianceSvc,
		interval:      interval,
	}
}

func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "roster_compliance_scan",
		Interval: j.interval,
		Fn:       j.ScanRoster,
	})
}

func (j *ComplianceJobs) ScanRoster(ctx context.Context) error {
	start := time.Now()
	reports, err := j.complianceSvc.ReportForRoster(ctx, nil)
	if err != nil {
		return fmt.Errorf("roster scan: %w", err)
	}

	nonCompliant := 0
	failed := 0
	for _, userReport := range reports {
		if userReport.Error != nil {
			failed++
			slog.Error("Cron: Compliance report failed for user",
				"user_id", userReport.UserID,
				"error", *userReport.Error)
			continue
		}
		if userReport.Report.IsCompliant {
			continue
		}

		nonCompliant++
		slog.Warn("Cron: User out of compliance",
			"user_id", userReport.UserID,
			"total_hours", userReport.Report.TotalHours,
			"rest_violations", userReport.Report.RestViolations,
			"weekly_violations", userReport.Report.WeeklyViolations,
			"violating_weeks", userReport.Report.ViolatingWeeks)
	}

	slog.Info("Cron: Roster compliance scan finished",
		"users", len(reports),
		"non_compliant", nonCompliant,
		"failed", failed,
		"duration", time.Since(start))
	return nil
}
