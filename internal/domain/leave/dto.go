package leave

import (
	"time"

	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type CreateLeaveRequest struct {
	UserID            string  `json:"user_id"`
	LeaveType         string  `json:"leave_type"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Reason            *string `json:"reason"`
	DocumentationPath *string `json:"documentation_path"`
	Origin            *audit.Origin
}

func (r *CreateLeaveRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !LeaveType(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: vacation, sick_leave, special_permit",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be after start_date",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type ApproveLeaveRequest struct {
	ID         string `json:"id"`
	ReviewerID string `json:"reviewer_id"`
	Origin     *audit.Origin
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID         string `json:"id"`
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason"`
	Origin     *audit.Origin
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelLeaveRequest struct {
	ID      string `json:"id"`
	ActorID string `json:"actor_id"`
	IsAdmin bool   `json:"-"`
	Origin  *audit.Origin
}

func (r *CancelLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LeaveResponse is the externally visible shape of a leave request.
type LeaveResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	LeaveType         string     `json:"leave_type"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Status            string     `json:"status"`
	Reason            *string    `json:"reason"`
	ReviewedBy        *string    `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	ApprovedBy        *string    `json:"approved_by"`
	ApprovedAt        *time.Time `json:"approved_at"`
	RejectionReason   *string    `json:"rejection_reason"`
	CanceledBy        *string    `json:"canceled_by"`
	CanceledAt        *time.Time `json:"canceled_at"`
	HasDocumentation  bool       `json:"has_documentation"`
	DocumentationPath *string    `json:"documentation_path"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewLeaveResponse(request LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:                request.ID,
		UserID:            request.UserID,
		LeaveType:         string(request.LeaveType),
		StartDate:         request.StartDate.Format("2006-01-02"),
		EndDate:           request.EndDate.Format("2006-01-02"),
		Status:            string(request.Status),
		Reason:            request.Reason,
		ReviewedBy:        request.ReviewedBy,
		ReviewedAt:        request.ReviewedAt,
		ApprovedBy:        request.ApprovedBy,
		ApprovedAt:        request.ApprovedAt,
		RejectionReason:   request.RejectionReason,
		CanceledBy:        request.CanceledBy,
		CanceledAt:        request.CanceledAt,
		HasDocumentation:  request.HasDocumentation,
		DocumentationPath: request.DocumentationPath,
		CreatedAt:         request.CreatedAt,
	}
}

// LeaveDays buckets business days of approved leave by category.
type LeaveDays struct {
	Vacation      int `json:"vacation"`
	SickLeave     int `json:"sick_leave"`
	SpecialPermit int `json:"special_permit"`
}
