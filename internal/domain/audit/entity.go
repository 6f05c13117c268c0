package audit

import (
	"encoding/json"
	"time"
)

// Action is the verb recorded for an audit entry. The set is open: callers
// may record verbs beyond the constants below.
type Action string

const (
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionCancel      Action = "cancel"
	ActionClockIn     Action = "clock_in"
	ActionClockOut    Action = "clock_out"
	ActionLogin       Action = "login"
	ActionLoginFailed Action = "login_failed"
)

// Resource types recorded on entries.
const (
	ResourceTimeEntry    = "TimeEntry"
	ResourceLeaveRequest = "LeaveRequest"
	ResourceUser         = "User"
)

// Origin captures where a request came from.
type Origin struct {
	IPAddress *string
	UserAgent *string
}

// Entry is a single immutable audit record. Once appended it is never
// mutated; the retention sweep is the only deletion path. Seq is assigned
// by the store at write time and is the ordering authority: timestamps can
// collide or arrive out of commit order under concurrency, the sequence
// cannot.
type Entry struct {
	ID            string
	Seq           int64
	ActorID       string
	Action        Action
	ResourceType  string
	ResourceID    string
	Timestamp     time.Time
	PreviousState json.RawMessage
	NewState      json.RawMessage
	Note          *string
	IPAddress     *string
	UserAgent     *string
}
