package timesheet

import "errors"

// Timesheet domain errors
var (
	// Clock-in/out errors
	ErrOpenEntryExists = errors.New("an open time entry already exists")
	ErrNoOpenEntry     = errors.New("no open time entry found")

	// General errors
	ErrEntryNotFound        = errors.New("time entry not found")
	ErrEntryAlreadyApproved = errors.New("time entry has already been approved")
	ErrInvalidInterval      = errors.New("end time must be after start time")
)
