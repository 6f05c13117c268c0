package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktide/timetrack-backend-go/internal/domain/leave"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, user_id, leave_type, start_date, end_date, status, reason,
	reviewed_by, reviewed_at, approved_by, approved_at, rejection_reason,
	canceled_by, canceled_at, has_documentation, documentation_path,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := row.Scan(
		&request.ID, &request.UserID, &request.LeaveType, &request.StartDate, &request.EndDate,
		&request.Status, &request.Reason,
		&request.ReviewedBy, &request.ReviewedAt, &request.ApprovedBy, &request.ApprovedAt,
		&request.RejectionReason, &request.CanceledBy, &request.CanceledAt,
		&request.HasDocumentation, &request.DocumentationPath,
		&request.CreatedAt, &request.UpdatedAt,
	)
	return request, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, leave_type, start_date, end_date, status, reason,
			has_documentation, documentation_path
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.UserID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Status,
		request.Reason,
		request.HasDocumentation,
		request.DocumentationPath,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return request, nil
}

// GetByUserAndPeriod implements leave.LeaveRequestRepository. Date-level
// overlap: a request belongs to the period when its date range intersects
// [from, to].
func (r *leaveRequestRepository) GetByUserAndPeriod(ctx context.Context, userID string, from, to time.Time, status *leave.RequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE user_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
	`
	args := []interface{}{userID, from, to}
	if status != nil {
		query += ` AND status = $4`
		args = append(args, *status)
	}
	query += ` ORDER BY start_date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// HasActiveOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) HasActiveOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4 = '' OR id::text <> $4)
		)
	`

	var overlaps bool
	if err := q.QueryRow(ctx, query, userID, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return overlaps, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			leave_type = $2,
			start_date = $3,
			end_date = $4,
			status = $5,
			reason = $6,
			reviewed_by = $7,
			reviewed_at = $8,
			approved_by = $9,
			approved_at = $10,
			rejection_reason = $11,
			canceled_by = $12,
			canceled_at = $13,
			has_documentation = $14,
			documentation_path = $15,
			updated_at = now()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Status,
		request.Reason,
		request.ReviewedBy,
		request.ReviewedAt,
		request.ApprovedBy,
		request.ApprovedAt,
		request.RejectionReason,
		request.CanceledBy,
		request.CanceledAt,
		request.HasDocumentation,
		request.DocumentationPath,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}
