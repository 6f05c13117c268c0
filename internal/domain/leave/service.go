package leave

import (
	"context"
	"time"
)

// LeaveService defines business logic for the leave workflow. State changes
// are audited atomically with the entity write.
type LeaveService interface {
	// CreateRequest submits a pending leave request, rejecting overlaps
	// with the user's other active requests.
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// ApproveRequest transitions a pending request to approved.
	ApproveRequest(ctx context.Context, req ApproveLeaveRequest) (LeaveResponse, error)

	// RejectRequest transitions a pending request to rejected.
	RejectRequest(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)

	// CancelRequest cancels a request. Owners may cancel while pending;
	// admins may also cancel approved or rejected requests as a terminal
	// override.
	CancelRequest(ctx context.Context, req CancelLeaveRequest) (LeaveResponse, error)

	// GetUserRequests lists a user's requests overlapping [from, to].
	GetUserRequests(ctx context.Context, userID string, from, to time.Time) ([]LeaveResponse, error)

	// LeaveDaysByType counts business days of approved leave overlapping
	// [from, to], bucketed by category.
	LeaveDaysByType(ctx context.Context, userID string, from, to time.Time) (LeaveDays, error)
}
