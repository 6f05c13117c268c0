package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worktide/timetrack-backend-go/internal/config"
	"github.com/worktide/timetrack-backend-go/internal/domain/compliance"
	"github.com/worktide/timetrack-backend-go/internal/pkg/cron"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
	"github.com/worktide/timetrack-backend-go/internal/repository/postgresql"
	auditService "github.com/worktide/timetrack-backend-go/internal/service/audit"
	complianceService "github.com/worktide/timetrack-backend-go/internal/service/compliance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	entryRepo := postgresql.NewTimeEntryRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	auditRepo := postgresql.NewAuditLogRepository(db)

	auditSvc := auditService.NewAuditService(auditRepo, auditService.RetentionPolicy{
		RetentionDays: cfg.Audit.RetentionDays,
		BatchSize:     cfg.Audit.SweepBatchSize,
	})

	thresholds := compliance.Thresholds{
		MaxWeeklyHours:    cfg.Compliance.MaxWeeklyHours,
		MinDailyRestHours: cfg.Compliance.MinDailyRestHours,
	}
	complianceSvc := complianceService.NewComplianceService(
		entryRepo,
		userRepo,
		thresholds,
		cfg.Compliance.StandardDayHours,
		loc,
	)

	scheduler := cron.NewScheduler()
	cron.NewAuditJobs(auditSvc, cfg.Audit.SweepInterval).RegisterJobs(scheduler)
	cron.NewComplianceJobs(complianceSvc, cfg.Compliance.ScanInterval).RegisterJobs(scheduler)
	scheduler.Start()

	slog.Info("Compliance engine started",
		"env", cfg.App.Env,
		"timezone", cfg.App.Timezone,
		"max_weekly_hours", cfg.Compliance.MaxWeeklyHours,
		"min_daily_rest_hours", cfg.Compliance.MinDailyRestHours,
		"audit_retention_days", cfg.Audit.RetentionDays)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("Shutdown signal received")
	scheduler.Stop()
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("app", "timetrack-engine", "env", cfg.App.Env)
	slog.SetDefault(logger)
}
