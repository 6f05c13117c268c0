package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
)

// auditLogRepository is append-only by construction: the only statements it
// issues are INSERT, SELECT and the retention DELETE. There is no UPDATE.
type auditLogRepository struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.Repository {
	return &auditLogRepository{db: db}
}

const auditLogColumns = `
	id, seq, actor_id, action, resource_type, resource_id, timestamp,
	previous_state, new_state, note, ip_address, user_agent
`

func scanAuditEntry(row pgx.Row) (audit.Entry, error) {
	var entry audit.Entry
	err := row.Scan(
		&entry.ID, &entry.Seq, &entry.ActorID, &entry.Action, &entry.ResourceType, &entry.ResourceID,
		&entry.Timestamp, &entry.PreviousState, &entry.NewState,
		&entry.Note, &entry.IPAddress, &entry.UserAgent,
	)
	return entry, err
}

// Append implements audit.Repository. The database assigns both the
// timestamp and the sequence number at insert time; the sequence, not the
// timestamp, carries the write order, since concurrent transactions can
// commit in a different order than their clock reads.
func (r *auditLogRepository) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (
			id, actor_id, action, resource_type, resource_id,
			previous_state, new_state, note, ip_address, user_agent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING timestamp, seq
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.PreviousState,
		entry.NewState,
		entry.Note,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.Timestamp, &entry.Seq)

	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return entry, nil
}

// ListByResource implements audit.Repository.
func (r *auditLogRepository) ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + auditLogColumns + `
		FROM audit_logs
		WHERE resource_type = $1
		  AND resource_id = $2
		ORDER BY seq ASC
		LIMIT $3 OFFSET $4
	`

	rows, err := q.Query(ctx, query, resourceType, resourceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	return collectAuditEntries(rows)
}

// List implements audit.Repository.
func (r *auditLogRepository) List(ctx context.Context, filter audit.ListFilter) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.ActorID != nil && *filter.ActorID != "" {
		baseWhere += fmt.Sprintf(" AND actor_id = $%d", argIdx)
		args = append(args, *filter.ActorID)
		argIdx++
	}
	if filter.ResourceType != nil && *filter.ResourceType != "" {
		baseWhere += fmt.Sprintf(" AND resource_type = $%d", argIdx)
		args = append(args, *filter.ResourceType)
		argIdx++
	}
	if filter.ResourceID != nil && *filter.ResourceID != "" {
		baseWhere += fmt.Sprintf(" AND resource_id = $%d", argIdx)
		args = append(args, *filter.ResourceID)
		argIdx++
	}
	if filter.Action != nil && *filter.Action != "" {
		baseWhere += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM audit_logs
		WHERE %s
		ORDER BY seq DESC
		LIMIT $%d OFFSET $%d
	`, auditLogColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	return collectAuditEntries(rows)
}

// DeleteOlderThan implements audit.Repository. The batched subselect keeps
// each delete short-lived so the sweep never blocks concurrent appends.
func (r *auditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM audit_logs
		WHERE id IN (
			SELECT id FROM audit_logs
			WHERE timestamp < $1
			ORDER BY seq ASC
			LIMIT $2
		)
	`

	commandTag, err := q.Exec(ctx, query, cutoff, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired audit entries: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func collectAuditEntries(rows pgx.Rows) ([]audit.Entry, error) {
	var entries []audit.Entry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
