package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktide/timetrack-backend-go/internal/domain/timesheet"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timesheet.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	id, user_id, start_time, end_time, description,
	is_manual_entry, is_approved, approved_by, approved_at,
	audit_note, change_type, created_at, updated_at
`

func scanTimeEntry(row pgx.Row) (timesheet.TimeEntry, error) {
	var entry timesheet.TimeEntry
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.StartTime, &entry.EndTime, &entry.Description,
		&entry.IsManualEntry, &entry.IsApproved, &entry.ApprovedBy, &entry.ApprovedAt,
		&entry.AuditNote, &entry.ChangeType, &entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

// Create implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			id, user_id, start_time, end_time, description,
			is_manual_entry, is_approved, approved_by, approved_at,
			audit_note, change_type
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.StartTime,
		entry.EndTime,
		entry.Description,
		entry.IsManualEntry,
		entry.IsApproved,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.AuditNote,
		entry.ChangeType,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return timesheet.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return entry, nil
}

// GetByUserAndPeriod implements timesheet.TimeEntryRepository. Overlap
// semantics: an entry belongs to the period when it starts before the
// period ends and has not ended before the period starts.
func (r *timeEntryRepository) GetByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND start_time <= $3
		  AND (end_time IS NULL OR end_time >= $2)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetOpenEntry implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenEntry(ctx context.Context, userID string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeEntry{}, timesheet.ErrNoOpenEntry
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to get open time entry: %w", err)
	}

	return entry, nil
}

// Update implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timesheet.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries SET
			start_time = $2,
			end_time = $3,
			description = $4,
			is_approved = $5,
			approved_by = $6,
			approved_at = $7,
			audit_note = $8,
			change_type = $9,
			updated_at = now()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		entry.ID,
		entry.StartTime,
		entry.EndTime,
		entry.Description,
		entry.IsApproved,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.AuditNote,
		entry.ChangeType,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}

	return nil
}

// Delete implements timesheet.TimeEntryRepository.
func (r *timeEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM time_entries WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}

	return nil
}
