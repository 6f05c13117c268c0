package audit

import (
	"github.com/worktide/timetrack-backend-go/internal/pkg/validator"
)

// RecordRequest describes one state-changing action to be written to the
// audit trail. PreviousState and NewState are marshalled to JSON as-is.
type RecordRequest struct {
	ActorID       string
	Action        Action
	ResourceType  string
	ResourceID    string
	PreviousState interface{}
	NewState      interface{}
	Note          *string
	Origin        *Origin
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if validator.IsEmpty(string(r.Action)) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	}

	if validator.IsEmpty(r.ResourceType) {
		errs = append(errs, validator.ValidationError{
			Field:   "resource_type",
			Message: "resource_type is required",
		})
	}

	if validator.IsEmpty(r.ResourceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "resource_id",
			Message: "resource_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows entry listings.
type ListFilter struct {
	ActorID      *string
	ResourceType *string
	ResourceID   *string
	Action       *Action
	Limit        int
	Offset       int
}
