package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
	"github.com/worktide/timetrack-backend-go/internal/repository/postgresql"
)

type TimeEntryServiceImpl struct {
	db        *database.DB
	entryRepo timesheet.TimeEntryRepository
	recorder  audit.Recorder
}

func NewTimeEntryService(db *database.DB, entryRepo timesheet.TimeEntryRepository, recorder audit.Recorder) timesheet.TimeEntryService {
	return &TimeEntryServiceImpl{
		db:        db,
		entryRepo: entryRepo,
		recorder:  recorder,
	}
}

// ClockIn implements timesheet.TimeEntryService. Automatic entries are
// approved on creation; only manual entries need review.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, req timesheet.ClockInRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	_, err := s.entryRepo.GetOpenEntry(ctx, req.UserID)
	if err == nil {
		return timesheet.EntryResponse{}, timesheet.ErrOpenEntryExists
	}
	if err != timesheet.ErrNoOpenEntry {
		return timesheet.EntryResponse{}, err
	}

	entry := timesheet.TimeEntry{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		StartTime:     time.Now(),
		Description:   req.Description,
		IsManualEntry: false,
		IsApproved:    true,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.entryRepo.Create(txCtx, entry)
		if err != nil {
			return err
		}
		entry = created

		_, err = s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:      req.UserID,
			Action:       audit.ActionClockIn,
			ResourceType: audit.ResourceTimeEntry,
			ResourceID:   entry.ID,
			NewState:     entry,
			Origin:       req.Origin,
		})
		return err
	})
	if err != nil {
		// The partial unique index on open entries closes the race the
		// read-then-insert check above cannot: a concurrent clock-in that
		// slipped past the check fails here.
		if isOpenEntryConflict(err) {
			return timesheet.EntryResponse{}, timesheet.ErrOpenEntryExists
		}
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(entry), nil
}

func isOpenEntryConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "idx_time_entries_one_open"
}

// ClockOut implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockOut(ctx context.Context, req timesheet.ClockOutRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetOpenEntry(ctx, req.UserID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	previous := entry
	now := time.Now()
	entry.EndTime = &now
	if err := entry.ValidateInterval(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.entryRepo.Update(txCtx, entry); err != nil {
			return err
		}

		_, err := s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:       req.UserID,
			Action:        audit.ActionClockOut,
			ResourceType:  audit.ResourceTimeEntry,
			ResourceID:    entry.ID,
			PreviousState: previous,
			NewState:      entry,
			Origin:        req.Origin,
		})
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(entry), nil
}

// CreateManualEntry implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) CreateManualEntry(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry := timesheet.TimeEntry{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		StartTime:     start,
		EndTime:       end,
		Description:   req.Description,
		IsManualEntry: true,
		IsApproved:    false,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.entryRepo.Create(txCtx, entry)
		if err != nil {
			return err
		}
		entry = created

		_, err = s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:      req.UserID,
			Action:       audit.ActionCreate,
			ResourceType: audit.ResourceTimeEntry,
			ResourceID:   entry.ID,
			NewState:     entry,
			Origin:       req.Origin,
		})
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(entry), nil
}

// UpdateEntry implements timesheet.TimeEntryService. An edit reverts a
// manual entry to unapproved so the change gets reviewed again.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, req timesheet.UpdateEntryRequest) (timesheet.EntryResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	previous := entry

	if start != nil {
		entry.StartTime = *start
	}
	if end != nil {
		entry.EndTime = end
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if err := entry.ValidateInterval(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	if entry.IsManualEntry {
		entry.IsApproved = false
		entry.ApprovedBy = nil
		entry.ApprovedAt = nil
	}
	entry.AuditNote = req.Note
	changeType := string(audit.ActionUpdate)
	entry.ChangeType = &changeType

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.entryRepo.Update(txCtx, entry); err != nil {
			return err
		}

		_, err := s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:       req.ActorID,
			Action:        audit.ActionUpdate,
			ResourceType:  audit.ResourceTimeEntry,
			ResourceID:    entry.ID,
			PreviousState: previous,
			NewState:      entry,
			Note:          req.Note,
			Origin:        req.Origin,
		})
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(entry), nil
}

// ApproveEntry implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) ApproveEntry(ctx context.Context, req timesheet.ApproveEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	if entry.IsApproved {
		return timesheet.EntryResponse{}, timesheet.ErrEntryAlreadyApproved
	}

	previous := entry
	now := time.Now()
	entry.IsApproved = true
	entry.ApprovedBy = &req.ApproverID
	entry.ApprovedAt = &now

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.entryRepo.Update(txCtx, entry); err != nil {
			return err
		}

		_, err := s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:       req.ApproverID,
			Action:        audit.ActionApprove,
			ResourceType:  audit.ResourceTimeEntry,
			ResourceID:    entry.ID,
			PreviousState: previous,
			NewState:      entry,
			Note:          req.Note,
			Origin:        req.Origin,
		})
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(entry), nil
}

// DeleteEntry implements timesheet.TimeEntryService. The previous-state
// snapshot is appended in the same transaction as the delete, so a
// committed delete always has its audit record.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, req timesheet.DeleteEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:       req.ActorID,
			Action:        audit.ActionDelete,
			ResourceType:  audit.ResourceTimeEntry,
			ResourceID:    entry.ID,
			PreviousState: entry,
			Note:          req.Note,
			Origin:        req.Origin,
		}); err != nil {
			return err
		}

		return s.entryRepo.Delete(txCtx, entry.ID)
	})
}

// GetUserEntries implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) GetUserEntries(ctx context.Context, userID string, from, to time.Time) ([]timesheet.EntryResponse, error) {
	entries, err := s.entryRepo.GetByUserAndPeriod(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, timesheet.NewEntryResponse(entry))
	}
	return responses, nil
}
