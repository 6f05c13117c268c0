package timesheet

import (
	"time"
)

// TimeEntry is a bounded work interval. An entry with a nil EndTime is an
// open session still in progress; open entries never count toward totals.
type TimeEntry struct {
	ID            string
	UserID        string
	StartTime     time.Time
	EndTime       *time.Time
	Description   *string
	IsManualEntry bool
	IsApproved    bool
	ApprovedBy    *string
	ApprovedAt    *time.Time
	AuditNote     *string
	ChangeType    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOpen reports whether the entry is still running.
func (e TimeEntry) IsOpen() bool {
	return e.EndTime == nil
}

// Duration returns the worked duration of a completed entry, zero if open.
func (e TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// ValidateInterval enforces the interval invariant: a present end time must
// be strictly after the start time.
func (e TimeEntry) ValidateInterval() error {
	if e.StartTime.IsZero() {
		return ErrInvalidInterval
	}
	if e.EndTime != nil && !e.EndTime.After(e.StartTime) {
		return ErrInvalidInterval
	}
	return nil
}
