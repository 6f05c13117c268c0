package postgresql_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/repository/postgresql"
)

func appendEntry(t *testing.T, repo audit.Repository, action audit.Action, resourceID string) audit.Entry {
	t.Helper()

	entry, err := repo.Append(context.Background(), audit.Entry{
		ID:           uuid.NewString(),
		ActorID:      "actor-1",
		Action:       action,
		ResourceType: audit.ResourceTimeEntry,
		ResourceID:   resourceID,
		NewState:     json.RawMessage(`{"k":"v"}`),
	})
	require.NoError(t, err)
	return entry
}

func TestAuditLogRepository_AppendAssignsTimestampAndSeq(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)

	first := appendEntry(t, repo, audit.ActionCreate, "res-1")
	assert.False(t, first.Timestamp.IsZero())
	assert.WithinDuration(t, time.Now(), first.Timestamp, time.Minute)
	assert.Positive(t, first.Seq)

	second := appendEntry(t, repo, audit.ActionUpdate, "res-1")
	assert.Greater(t, second.Seq, first.Seq)
}

func TestAuditLogRepository_ListByResourceOrderedByWrite(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)
	ctx := context.Background()

	first := appendEntry(t, repo, audit.ActionCreate, "res-2")
	second := appendEntry(t, repo, audit.ActionUpdate, "res-2")
	third := appendEntry(t, repo, audit.ActionDelete, "res-2")
	appendEntry(t, repo, audit.ActionCreate, "res-other")

	entries, err := repo.ListByResource(ctx, audit.ResourceTimeEntry, "res-2", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, third.ID, entries[2].ID)
}

func TestAuditLogRepository_SeqOrderSurvivesTimestampSkew(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)
	ctx := context.Background()

	first := appendEntry(t, repo, audit.ActionCreate, "res-skew")
	second := appendEntry(t, repo, audit.ActionUpdate, "res-skew")
	third := appendEntry(t, repo, audit.ActionDelete, "res-skew")

	// Simulate clock skew: the middle write carries the oldest timestamp.
	// The trail must still come back in write order.
	_, err := db.Exec(ctx,
		`UPDATE audit_logs SET timestamp = timestamp - interval '1 hour' WHERE id = $1`,
		second.ID)
	require.NoError(t, err)

	entries, err := repo.ListByResource(ctx, audit.ResourceTimeEntry, "res-skew", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, third.ID, entries[2].ID)
}

func TestAuditLogRepository_IdenticalPayloadsKeptSeparately(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)
	ctx := context.Background()

	appendEntry(t, repo, audit.ActionClockIn, "res-3")
	appendEntry(t, repo, audit.ActionClockIn, "res-3")

	entries, err := repo.ListByResource(ctx, audit.ResourceTimeEntry, "res-3", 50, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditLogRepository_ListWithFilter(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)
	ctx := context.Background()

	appendEntry(t, repo, audit.ActionCreate, "res-4")
	appendEntry(t, repo, audit.ActionUpdate, "res-4")
	appendEntry(t, repo, audit.ActionUpdate, "res-5")

	action := audit.ActionUpdate
	entries, err := repo.List(ctx, audit.ListFilter{Action: &action, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	resID := "res-4"
	entries, err = repo.List(ctx, audit.ListFilter{ResourceID: &resID, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditLogRepository_DeleteOlderThanBatches(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	repo := postgresql.NewAuditLogRepository(db)
	ctx := context.Background()

	// Backdate five entries beyond the cutoff.
	for i := 0; i < 5; i++ {
		entry := appendEntry(t, repo, audit.ActionCreate, "res-old")
		_, err := db.Exec(ctx,
			`UPDATE audit_logs SET timestamp = now() - interval '200 days' WHERE id = $1`,
			entry.ID)
		require.NoError(t, err)
	}
	fresh := appendEntry(t, repo, audit.ActionCreate, "res-fresh")

	cutoff := time.Now().AddDate(0, 0, -180)

	deleted, err := repo.DeleteOlderThan(ctx, cutoff, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = repo.DeleteOlderThan(ctx, cutoff, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.ListByResource(ctx, audit.ResourceTimeEntry, "res-fresh", 50, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)

	gone, err := repo.ListByResource(ctx, audit.ResourceTimeEntry, "res-old", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, gone)
}
