package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access for leave requests.
type LeaveRequestRepository interface {
	// Create inserts a new leave request.
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by ID.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByUserAndPeriod retrieves requests overlapping [from, to] for a
	// user, optionally filtered by status.
	GetByUserAndPeriod(ctx context.Context, userID string, from, to time.Time, status *RequestStatus) ([]LeaveRequest, error)

	// HasActiveOverlap reports whether a pending or approved request of the
	// same user overlaps [start, end], ignoring excludeID when non-empty.
	HasActiveOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)

	// Update rewrites the mutable columns of an existing request.
	Update(ctx context.Context, request LeaveRequest) error
}
