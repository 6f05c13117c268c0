package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditService "github.com/worktide/timetrack-backend-go/internal/service/audit"
)

// AuditJobs owns the background maintenance of the audit trail. The
// retention sweep is the only code path that ever deletes audit entries.
type AuditJobs struct {
	auditSvc *auditService.AuditServiceImpl
	interval time.Duration
}

func NewAuditJobs(auditSvc *auditService.AuditServiceImpl, interval time.Duration) *AuditJobs {
	return &AuditJobs{
		auditSvc: auditSvc,
		interval: interval,
	}
}

func (j *AuditJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:       "audit_retention_sweep",
		Interval:   j.interval,
		RunOnStart: true,
		Fn:         j.RetentionSweep,
	})
}

func (j *AuditJobs) RetentionSweep(ctx context.Context) error {
	deleted, err := j.auditSvc.RunRetentionSweep(ctx)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}
	if deleted == 0 {
		slog.Debug("Cron: No expired audit entries")
	}
	return nil
}
