package audit

import "context"

// Recorder appends audit entries for state-changing actions. A call that
// returns nil error means the entry is durably written within the caller's
// unit of work; callers must treat a failed Record as fatal to the
// enclosing business transaction.
type Recorder interface {
	Record(ctx context.Context, req RecordRequest) (Entry, error)
}
