package timesheet

import (
	"context"
	"time"
)

// TimeEntryService defines business logic for time tracking. Every
// state-changing method writes its audit entry inside the same transaction
// as the entity change; on audit failure the change is rolled back.
type TimeEntryService interface {
	// ClockIn opens a new automatic entry; fails if one is already open.
	ClockIn(ctx context.Context, req ClockInRequest) (EntryResponse, error)

	// ClockOut closes the user's open entry.
	ClockOut(ctx context.Context, req ClockOutRequest) (EntryResponse, error)

	// CreateManualEntry records a manual entry, unapproved by default.
	CreateManualEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// UpdateEntry edits an entry's times or description.
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	// ApproveEntry marks a manual entry approved.
	ApproveEntry(ctx context.Context, req ApproveEntryRequest) (EntryResponse, error)

	// DeleteEntry hard-deletes an entry, snapshotting it to the audit
	// trail in the same transaction.
	DeleteEntry(ctx context.Context, req DeleteEntryRequest) error

	// GetUserEntries lists a user's entries overlapping [from, to].
	GetUserEntries(ctx context.Context, userID string, from, to time.Time) ([]EntryResponse, error)
}
