package leave

import (
	"time"
)

// LeaveType is the closed set of leave categories.
type LeaveType string

const (
	LeaveTypeVacation      LeaveType = "vacation"
	LeaveTypeSickLeave     LeaveType = "sick_leave"
	LeaveTypeSpecialPermit LeaveType = "special_permit"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeVacation, LeaveTypeSickLeave, LeaveTypeSpecialPermit:
		return true
	}
	return false
}

// RequestStatus is the leave workflow state. The workflow is linear:
// pending transitions exactly once to approved or rejected, and canceled is
// a terminal override reachable from any non-canceled state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusCanceled RequestStatus = "canceled"
)

// LeaveRequest is a leave interval. Dates are date-level: EndDate is the
// last day of leave, inclusive.
type LeaveRequest struct {
	ID        string
	UserID    string
	LeaveType LeaveType
	StartDate time.Time
	EndDate   time.Time
	Status    RequestStatus
	Reason    *string

	ReviewedBy      *string
	ReviewedAt      *time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CanceledBy *string
	CanceledAt *time.Time

	HasDocumentation  bool
	DocumentationPath *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the request still blocks overlapping leave.
// Only pending and approved requests contend for the same days.
func (r LeaveRequest) IsActive() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusApproved
}
