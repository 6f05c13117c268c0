package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/domain/leave"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
	"github.com/worktide/timetrack-backend-go/internal/repository/postgresql"
	auditService "github.com/worktide/timetrack-backend-go/internal/service/audit"
	leaveService "github.com/worktide/timetrack-backend-go/internal/service/leave"
)

func newLeaveService(db *database.DB) (leave.LeaveService, audit.Repository) {
	auditRepo := postgresql.NewAuditLogRepository(db)
	recorder := auditService.NewAuditService(auditRepo, auditService.RetentionPolicy{RetentionDays: 180, BatchSize: 500})
	return leaveService.NewLeaveService(db, postgresql.NewLeaveRequestRepository(db), recorder), auditRepo
}

func TestLeaveService_CreateRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, auditRepo := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-1", "ls1@example.com", false, true)

	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-09-02",
		EndDate:   "2024-09-06",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	// A second request over the same days is blocked while the first is
	// still active.
	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "sick_leave",
		StartDate: "2024-09-04",
		EndDate:   "2024-09-10",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	trail, err := auditRepo.ListByResource(ctx, audit.ResourceLeaveRequest, created.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, audit.ActionCreate, trail[0].Action)
}

func TestLeaveService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, _ := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-2", "ls2@example.com", false, true)

	// End date must be strictly after the start date.
	_, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-09-02",
		EndDate:   "2024-09-02",
	})
	require.Error(t, err)

	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "sabbatical",
		StartDate: "2024-09-02",
		EndDate:   "2024-09-06",
	})
	require.Error(t, err)
}

func TestLeaveService_ApprovalWorkflow(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, auditRepo := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-3", "ls3@example.com", false, true)
	reviewerID := seedUser(t, db, "u-ls-rev", "lsrev@example.com", true, true)

	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-10-07",
		EndDate:   "2024-10-11",
	})
	require.NoError(t, err)

	// The owner cannot review their own request.
	_, err = svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: created.ID, ReviewerID: userID})
	assert.ErrorIs(t, err, leave.ErrSelfReview)

	approved, err := svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: created.ID, ReviewerID: reviewerID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, reviewerID, *approved.ApprovedBy)

	// The workflow transitions exactly once.
	_, err = svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: created.ID, ReviewerID: reviewerID})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	_, err = svc.RejectRequest(ctx, leave.RejectLeaveRequest{ID: created.ID, ReviewerID: reviewerID, Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	trail, err := auditRepo.ListByResource(ctx, audit.ResourceLeaveRequest, created.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, audit.ActionApprove, trail[1].Action)
}

func TestLeaveService_RejectRecordsReason(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, _ := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-4", "ls4@example.com", false, true)
	reviewerID := seedUser(t, db, "u-ls-rev2", "lsrev2@example.com", true, true)

	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "special_permit",
		StartDate: "2024-10-14",
		EndDate:   "2024-10-16",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectRequest(ctx, leave.RejectLeaveRequest{
		ID:         created.ID,
		ReviewerID: reviewerID,
		Reason:     "project deadline week",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "project deadline week", *rejected.RejectionReason)
}

func TestLeaveService_CancelRules(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, _ := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-5", "ls5@example.com", false, true)
	otherID := seedUser(t, db, "u-ls-6", "ls6@example.com", false, true)
	adminID := seedUser(t, db, "u-ls-adm", "lsadm@example.com", true, true)
	reviewerID := seedUser(t, db, "u-ls-rev3", "lsrev3@example.com", true, true)

	pending, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-11-04",
		EndDate:   "2024-11-08",
	})
	require.NoError(t, err)

	// Another non-admin user cannot cancel someone else's pending request.
	_, err = svc.CancelRequest(ctx, leave.CancelLeaveRequest{ID: pending.ID, ActorID: otherID})
	assert.ErrorIs(t, err, leave.ErrCancelForbidden)

	// The owner can cancel while pending.
	canceled, err := svc.CancelRequest(ctx, leave.CancelLeaveRequest{ID: pending.ID, ActorID: userID})
	require.NoError(t, err)
	assert.Equal(t, "canceled", canceled.Status)

	// Canceled is terminal.
	_, err = svc.CancelRequest(ctx, leave.CancelLeaveRequest{ID: pending.ID, ActorID: adminID, IsAdmin: true})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	_, err = svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: pending.ID, ReviewerID: reviewerID})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	// Approved requests can only be canceled by an admin override.
	approvedReq, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-12-02",
		EndDate:   "2024-12-06",
	})
	require.NoError(t, err)
	_, err = svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: approvedReq.ID, ReviewerID: reviewerID})
	require.NoError(t, err)

	_, err = svc.CancelRequest(ctx, leave.CancelLeaveRequest{ID: approvedReq.ID, ActorID: userID})
	assert.ErrorIs(t, err, leave.ErrCancelForbidden)

	overridden, err := svc.CancelRequest(ctx, leave.CancelLeaveRequest{ID: approvedReq.ID, ActorID: adminID, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "canceled", overridden.Status)
}

func TestLeaveService_LeaveDaysByType(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	svc, _ := newLeaveService(db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-7", "ls7@example.com", false, true)
	reviewerID := seedUser(t, db, "u-ls-rev4", "lsrev4@example.com", true, true)

	// Thu Nov 28 through Tue Dec 3 2024: Thu, Fri, Mon, Tue are weekdays.
	vacation, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-11-28",
		EndDate:   "2024-12-03",
	})
	require.NoError(t, err)
	_, err = svc.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: vacation.ID, ReviewerID: reviewerID})
	require.NoError(t, err)

	// Pending requests never count.
	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "sick_leave",
		StartDate: "2024-11-11",
		EndDate:   "2024-11-13",
	})
	require.NoError(t, err)

	from := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)
	days, err := svc.LeaveDaysByType(ctx, userID, from, to)
	require.NoError(t, err)

	// Only Nov 28 and Nov 29 fall inside the period; Dec days are clipped.
	assert.Equal(t, 2, days.Vacation)
	assert.Equal(t, 0, days.SickLeave)
	assert.Equal(t, 0, days.SpecialPermit)
}

func TestLeaveService_AuditFailureRollsBackTransition(t *testing.T) {
	db := newTestDB(t)
	resetTables(t, db)
	ctx := context.Background()

	userID := seedUser(t, db, "u-ls-8", "ls8@example.com", false, true)
	reviewerID := seedUser(t, db, "u-ls-rev5", "lsrev5@example.com", true, true)

	requestRepo := postgresql.NewLeaveRequestRepository(db)
	working, _ := newLeaveService(db)
	broken := leaveService.NewLeaveService(db, requestRepo, failingRecorder{})

	created, err := working.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "vacation",
		StartDate: "2024-12-09",
		EndDate:   "2024-12-13",
	})
	require.NoError(t, err)

	_, err = broken.ApproveRequest(ctx, leave.ApproveLeaveRequest{ID: created.ID, ReviewerID: reviewerID})
	require.Error(t, err)

	// The status change rolled back with the failed audit append.
	got, err := requestRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusPending, got.Status)
	assert.Nil(t, got.ApprovedBy)

	// A failed audit append also aborts creation outright.
	_, err = broken.CreateRequest(ctx, leave.CreateLeaveRequest{
		UserID:    userID,
		LeaveType: "sick_leave",
		StartDate: "2025-01-06",
		EndDate:   "2025-01-08",
	})
	require.Error(t, err)

	requests, err := working.GetUserRequests(ctx, userID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, requests)
}
