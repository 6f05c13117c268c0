package timesheet

import (
	"time"

	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type ClockInRequest struct {
	UserID      string  `json:"user_id"`
	Description *string `json:"description"`
	Origin      *audit.Origin
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	UserID string `json:"user_id"`
	Origin *audit.Origin
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEntryRequest adds a manual entry. Timestamps are RFC3339 so the
// recording timezone travels with the request.
type CreateEntryRequest struct {
	UserID      string  `json:"user_id"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Description *string `json:"description"`
	Origin      *audit.Origin
}

func (r *CreateEntryRequest) Validate() (time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, ok := validator.IsValidDateTime(r.StartTime)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid RFC3339 timestamp",
		})
	}

	var end *time.Time
	if r.EndTime != nil {
		parsed, ok := validator.IsValidDateTime(*r.EndTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid RFC3339 timestamp",
			})
		} else if !parsed.After(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		} else {
			end = &parsed
		}
	}

	if len(errs) > 0 {
		return time.Time{}, nil, errs
	}
	return start, end, nil
}

type UpdateEntryRequest struct {
	ID          string  `json:"id"`
	ActorID     string  `json:"actor_id"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Description *string `json:"description"`
	Note        *string `json:"note"`
	Origin      *audit.Origin
}

// Validate returns the parsed replacement times, nil where the field was
// not supplied, so callers never re-parse the raw strings.
func (r *UpdateEntryRequest) Validate() (*time.Time, *time.Time, error) {
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

	var start, end *time.Time
	if r.StartTime != nil {
		parsed, ok := validator.IsValidDateTime(*r.StartTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid RFC3339 timestamp",
			})
		} else {
			start = &parsed
		}
	}

	if r.EndTime != nil {
		parsed, ok := validator.IsValidDateTime(*r.EndTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid RFC3339 timestamp",
			})
		} else {
			end = &parsed
		}
	}

	if r.StartTime == nil && r.EndTime == nil && r.Description == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one updatable field is required",
		})
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return start, end, nil
}

type ApproveEntryRequest struct {
	ID         string  `json:"id"`
	ApproverID string  `json:"approver_id"`
	Note       *string `json:"note"`
	Origin     *audit.Origin
}

func (r *ApproveEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteEntryRequest struct {
	ID      string  `json:"id"`
	ActorID string  `json:"actor_id"`
	Note    *string `json:"note"`
	Origin  *audit.Origin
}

func (r *DeleteEntryRequest) Validate() error {
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

// EntryResponse is the externally visible shape of a time entry.
type EntryResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Description   *string    `json:"description"`
	DurationHours *float64   `json:"duration_hours"`
	InProgress    bool       `json:"in_progress"`
	IsManualEntry bool       `json:"is_manual_entry"`
	IsApproved    bool       `json:"is_approved"`
	ApprovedBy    *string    `json:"approved_by"`
	ApprovedAt    *time.Time `json:"approved_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewEntryResponse(entry TimeEntry) EntryResponse {
	resp := EntryResponse{
		ID:            entry.ID,
		UserID:        entry.UserID,
		StartTime:     entry.StartTime,
		EndTime:       entry.EndTime,
		Description:   entry.Description,
		InProgress:    entry.IsOpen(),
		IsManualEntry: entry.IsManualEntry,
		IsApproved:    entry.IsApproved,
		ApprovedBy:    entry.ApprovedBy,
		ApprovedAt:    entry.ApprovedAt,
		CreatedAt:     entry.CreatedAt,
	}
	if entry.EndTime != nil {
		hours := entry.Duration().Seconds() / 3600
		resp.DurationHours = &hours
	}
	return resp
}
