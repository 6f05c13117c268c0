package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/worktide/timetrack-backend-go/internal/domain/audit"
	"github.com/worktide/timetrack-backend-go/internal/domain/leave"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
	"github.com/worktide/timetrack-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db          *database.DB
	requestRepo leave.LeaveRequestRepository
	recorder    audit.Recorder
}

func NewLeaveService(db *database.DB, requestRepo leave.LeaveRequestRepository, recorder audit.Recorder) leave.LeaveService {
	return &LeaveServiceImpl{
		db:          db,
		requestRepo: requestRepo,
		recorder:    recorder,
	}
}

// CreateRequest implements leave.LeaveService. At most one active (pending
// or approved) request may cover a given day for a user.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	overlaps, err := s.requestRepo.HasActiveOverlap(ctx, req.UserID, start, end, "")
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if overlaps {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	request := leave.LeaveRequest{
		ID:                uuid.NewString(),
		UserID:            req.UserID,
		LeaveType:         leave.LeaveType(req.LeaveType),
		StartDate:         start,
		EndDate:           end,
		Status:            leave.RequestStatusPending,
		Reason:            req.Reason,
		HasDocumentation:  req.DocumentationPath != nil,
		DocumentationPath: req.DocumentationPath,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.requestRepo.Create(txCtx, request)
		if err != nil {
			return err
		}
		request = created

		_, err = s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:      req.UserID,
			Action:       audit.ActionCreate,
			ResourceType: audit.ResourceLeaveRequest,
			ResourceID:   request.ID,
			NewState:     request,
			Origin:       req.Origin,
		})
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.NewLeaveResponse(request), nil
}

// ApproveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}
	if request.UserID == req.ReviewerID {
		return leave.LeaveResponse{}, leave.ErrSelfReview
	}

	previous := request
	now := time.Now()
	request.Status = leave.RequestStatusApproved
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &now
	request.ApprovedBy = &req.ReviewerID
	request.ApprovedAt = &now

	if err := s.applyTransition(ctx, &request, previous, req.ReviewerID, audit.ActionApprove, nil, req.Origin); err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(request), nil
}

// RejectRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}
	if request.UserID == req.ReviewerID {
		return leave.LeaveResponse{}, leave.ErrSelfReview
	}

	previous := request
	now := time.Now()
	request.Status = leave.RequestStatusRejected
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &now
	request.RejectionReason = &req.Reason

	if err := s.applyTransition(ctx, &request, previous, req.ReviewerID, audit.ActionReject, &req.Reason, req.Origin); err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(request), nil
}

// CancelRequest implements leave.LeaveService. Cancellation is terminal:
// owners may cancel their own pending request, and admins may additionally
// override an approved or rejected one. A canceled request stays canceled.
func (s *LeaveServiceImpl) CancelRequest(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status == leave.RequestStatusCanceled {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}
	if request.Status != leave.RequestStatusPending && !req.IsAdmin {
		return leave.LeaveResponse{}, leave.ErrCancelForbidden
	}
	if request.Status == leave.RequestStatusPending && !req.IsAdmin && request.UserID != req.ActorID {
		return leave.LeaveResponse{}, leave.ErrCancelForbidden
	}

	previous := request
	now := time.Now()
	request.Status = leave.RequestStatusCanceled
	request.CanceledBy = &req.ActorID
	request.CanceledAt = &now

	if err := s.applyTransition(ctx, &request, previous, req.ActorID, audit.ActionCancel, nil, req.Origin); err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(request), nil
}

// GetUserRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetUserRequests(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveResponse, error) {
	requests, err := s.requestRepo.GetByUserAndPeriod(ctx, userID, from, to, nil)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.NewLeaveResponse(request))
	}
	return responses, nil
}

// LeaveDaysByType implements leave.LeaveService. Only the part of each
// approved request overlapping the period counts, and only its weekdays.
func (s *LeaveServiceImpl) LeaveDaysByType(ctx context.Context, userID string, from, to time.Time) (leave.LeaveDays, error) {
	approved := leave.RequestStatusApproved
	requests, err := s.requestRepo.GetByUserAndPeriod(ctx, userID, from, to, &approved)
	if err != nil {
		return leave.LeaveDays{}, err
	}

	var days leave.LeaveDays
	for _, request := range requests {
		overlapStart := request.StartDate
		if from.After(overlapStart) {
			overlapStart = from
		}
		overlapEnd := request.EndDate
		if to.Before(overlapEnd) {
			overlapEnd = to
		}

		for day := overlapStart; !day.After(overlapEnd); day = day.AddDate(0, 0, 1) {
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			switch request.LeaveType {
			case leave.LeaveTypeVacation:
				days.Vacation++
			case leave.LeaveTypeSickLeave:
				days.SickLeave++
			case leave.LeaveTypeSpecialPermit:
				days.SpecialPermit++
			}
		}
	}

	return days, nil
}

// applyTransition writes the status change and its audit entry in one
// transaction.
func (s *LeaveServiceImpl) applyTransition(
	ctx context.Context,
	request *leave.LeaveRequest,
	previous leave.LeaveRequest,
	actorID string,
	action audit.Action,
	note *string,
	origin *audit.Origin,
) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requestRepo.Update(txCtx, *request); err != nil {
			return err
		}

		_, err := s.recorder.Record(txCtx, audit.RecordRequest{
			ActorID:       actorID,
			Action:        action,
			ResourceType:  audit.ResourceLeaveRequest,
			ResourceID:    request.ID,
			PreviousState: previous,
			NewState:      *request,
			Note:          note,
			Origin:        origin,
		})
		return err
	})
}
