package timesheet

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for time entries.
type TimeEntryRepository interface {
	// Create inserts a new time entry.
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves a time entry by ID.
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetByUserAndPeriod retrieves entries overlapping [from, to] for a
	// user, ordered by start time ascending. Open entries whose start falls
	// inside the period are included.
	GetByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]TimeEntry, error)

	// GetOpenEntry retrieves the most recent entry without an end time.
	// Returns ErrNoOpenEntry when the user has no running session.
	GetOpenEntry(ctx context.Context, userID string) (TimeEntry, error)

	// Update rewrites the mutable columns of an existing entry.
	Update(ctx context.Context, entry TimeEntry) error

	// Delete hard-deletes an entry. Callers must write the audit snapshot
	// in the same transaction.
	Delete(ctx context.Context, id string) error
}
