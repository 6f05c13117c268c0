package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been processed")
	ErrOverlappingLeave      = errors.New("an active leave request already overlaps this period")
	ErrSelfReview            = errors.New("leave requests cannot be reviewed by their owner")
	ErrCancelForbidden       = errors.New("only an admin may cancel a processed leave request")
)
