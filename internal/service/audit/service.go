package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
)

// RetentionPolicy bounds how long audit entries are kept and how the sweep
// deletes them. Deleting in batches keeps the sweep from holding long locks
// while concurrent appends are in flight.
type RetentionPolicy struct {
	RetentionDays int
	BatchSize     int
}

type AuditServiceImpl struct {
	repo      audit.Repository
	retention RetentionPolicy
}

func NewAuditService(repo audit.Repository, retention RetentionPolicy) *AuditServiceImpl {
	return &AuditServiceImpl{
		repo:      repo,
		retention: retention,
	}
}

// Record implements audit.Recorder. The entry is appended through whatever
// querier the context carries, so a caller running inside a transaction
// gets the append in the same unit of work as its entity write. Identical
// calls always produce distinct entries; audit writes are never merged.
func (s *AuditServiceImpl) Record(ctx context.Context, req audit.RecordRequest) (audit.Entry, error) {
	if err := req.Validate(); err != nil {
		return audit.Entry{}, err
	}

	entry := audit.Entry{
		ID:           uuid.NewString(),
		ActorID:      req.ActorID,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Note:         req.Note,
	}

	if req.PreviousState != nil {
		state, err := json.Marshal(req.PreviousState)
		if err != nil {
			return audit.Entry{}, fmt.Errorf("failed to marshal previous state: %w", err)
		}
		entry.PreviousState = state
	}
	if req.NewState != nil {
		state, err := json.Marshal(req.NewState)
		if err != nil {
			return audit.Entry{}, fmt.Errorf("failed to marshal new state: %w", err)
		}
		entry.NewState = state
	}
	if req.Origin != nil {
		entry.IPAddress = req.Origin.IPAddress
		entry.UserAgent = req.Origin.UserAgent
	}

	written, err := s.repo.Append(ctx, entry)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return written, nil
}

// GetResourceTrail returns the audit history of one resource, oldest first.
func (s *AuditServiceImpl) GetResourceTrail(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.repo.ListByResource(ctx, resourceType, resourceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// RunRetentionSweep deletes entries older than the retention horizon in
// batches until none remain, and returns the total removed. It is the sole
// deletion path for audit entries and runs outside any request transaction.
func (s *AuditServiceImpl) RunRetentionSweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.retention.RetentionDays)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		deleted, err := s.repo.DeleteOlderThan(ctx, cutoff, s.retention.BatchSize)
		if err != nil {
			return total, fmt.Errorf("failed to delete expired audit entries: %w", err)
		}
		total += deleted

		if deleted < int64(s.retention.BatchSize) {
			break
		}
	}

	if total > 0 {
		slog.Info("Audit retention sweep removed expired entries",
			"deleted", total,
			"cutoff", cutoff.Format(time.RFC3339))
	}
	return total, nil
}
