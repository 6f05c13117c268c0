package audit

import (
	"context"
	"time"
)

// Repository defines durable storage for the append-only audit trail.
// There is intentionally no update method: entries are written once. The
// only delete path is DeleteOlderThan, used by the retention sweep.
type Repository interface {
	// Append durably writes a new entry. The store assigns the timestamp
	// and the sequence number at write time; listings order by sequence so
	// per-resource entries follow write order even when timestamps collide.
	Append(ctx context.Context, entry Entry) (Entry, error)

	// ListByResource returns entries for a resource ordered oldest first.
	ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]Entry, error)

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Entry, error)

	// DeleteOlderThan removes at most batchSize entries older than cutoff
	// and reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}
