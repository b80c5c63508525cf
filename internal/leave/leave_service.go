package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"lemonpay/internal/events"
	leaveerrors "lemonpay/internal/leave/errors"
	"lemonpay/internal/messaging/kafka"
	"lemonpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TypeSick      = "sick"
	TypeCasual    = "casual"
	TypePlanned   = "planned"
	TypeUnplanned = "unplanned"

	StatusPending      = "pending"
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusAutoApproved = "auto-approved"

	// AnnualLimit caps approved sick and casual days per employee per
	// calendar year. Planned and unplanned leave is uncapped.
	AnnualLimit = 12
)

// decidedStatuses are the statuses that consume balance.
var decidedStatuses = []string{StatusApproved, StatusAutoApproved}

// DirectoryEntry is what the employee directory resolves an identifier to.
type DirectoryEntry struct {
	EmployeeID string
	FullName   string
}

// Directory resolves an employee number or email to an employee,
// case-insensitively. The employee module provides the implementation.
type Directory interface {
	Lookup(ctx context.Context, identifier string) (DirectoryEntry, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error)
	Balance(ctx context.Context, identifier string) (BalanceResponse, error)
	SetStatus(ctx context.Context, id, status string) (LeaveResponse, error)
	GetAll(ctx context.Context, limit, offset int) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory Directory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory Directory, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, directory, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory Directory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Submit validates a new leave request, enforces the annual cap for sick and
// casual leave, decides the initial status, and persists exactly one row.
//
// Single-day sick/casual requests are auto-approved; multi-day capped
// requests and all planned/unplanned requests start pending. The balance is
// recomputed from history on every call; there is no cross-request
// serialization, so two concurrent submissions at the cap boundary can both
// pass the check.
func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("identifier", req.Identifier),
		zap.String("leave_type", req.LeaveType),
		zap.Int("days", req.Days),
	)

	startDate, endDate, err := validateSubmitRequest(req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	entry, err := s.directory.Lookup(ctx, req.Identifier)
	if err != nil {
		s.logger.Warn("submit leave employee lookup failed",
			zap.String("identifier", req.Identifier),
			zap.Error(err),
		)
		return SubmitLeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	yearStart, yearEnd := calendarYear(startDate)

	sickUsed, err := qtx.SumDays(ctx, entry.EmployeeID, TypeSick, decidedStatuses, yearStart, yearEnd)
	if err != nil {
		s.logger.Error("submit leave sick balance query failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}
	casualUsed, err := qtx.SumDays(ctx, entry.EmployeeID, TypeCasual, decidedStatuses, yearStart, yearEnd)
	if err != nil {
		s.logger.Error("submit leave casual balance query failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	remainingSick := AnnualLimit - sickUsed
	remainingCasual := AnnualLimit - casualUsed

	if isCapped(req.LeaveType) {
		remaining := remainingSick
		if req.LeaveType == TypeCasual {
			remaining = remainingCasual
		}
		if req.Days > remaining {
			s.logger.Warn("submit leave insufficient balance",
				zap.String("employee_id", entry.EmployeeID),
				zap.String("leave_type", req.LeaveType),
				zap.Int("requested", req.Days),
				zap.Int("remaining", remaining),
			)
			return SubmitLeaveResponse{}, leaveerrors.InsufficientBalance(remaining, AnnualLimit)
		}
	}

	status := decideStatus(req.LeaveType, req.Days)

	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.FullName,
		LeaveType:    req.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		Days:         req.Days,
		Description:  req.Description,
		Status:       status,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	if status == StatusAutoApproved {
		if err := s.stageDecidedEvent(ctx, tx, rid, l); err != nil {
			s.logger.Error("submit leave outbox event failed", zap.Error(err))
			return SubmitLeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	// The just-approved request consumes balance immediately; the response
	// reflects it without a re-query.
	if status == StatusAutoApproved {
		switch req.LeaveType {
		case TypeSick:
			remainingSick -= req.Days
		case TypeCasual:
			remainingCasual -= req.Days
		}
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", entry.EmployeeID),
		zap.String("status", status),
	)

	return SubmitLeaveResponse{
		Leave:           mapToResponse(*l),
		RemainingSick:   remainingSick,
		RemainingCasual: remainingCasual,
	}, nil
}

// Balance recomputes the current-year remaining sick and casual days and the
// total pending days for planned and unplanned leave. Nothing is stored or
// cached: the result is always consistent with the request history at the
// cost of an O(n) scan per call.
func (s *service) Balance(ctx context.Context, identifier string) (BalanceResponse, error) {
	entry, err := s.directory.Lookup(ctx, identifier)
	if err != nil {
		return BalanceResponse{}, err
	}

	yearStart, yearEnd := calendarYear(time.Now().UTC())

	sickUsed, err := s.repo.SumDays(ctx, entry.EmployeeID, TypeSick, decidedStatuses, yearStart, yearEnd)
	if err != nil {
		return BalanceResponse{}, err
	}
	casualUsed, err := s.repo.SumDays(ctx, entry.EmployeeID, TypeCasual, decidedStatuses, yearStart, yearEnd)
	if err != nil {
		return BalanceResponse{}, err
	}

	pending := []string{StatusPending}
	plannedPending, err := s.repo.SumDays(ctx, entry.EmployeeID, TypePlanned, pending, yearStart, yearEnd)
	if err != nil {
		return BalanceResponse{}, err
	}
	unplannedPending, err := s.repo.SumDays(ctx, entry.EmployeeID, TypeUnplanned, pending, yearStart, yearEnd)
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		Sick:              AnnualLimit - sickUsed,
		Casual:            AnnualLimit - casualUsed,
		PlannedRequests:   plannedPending,
		UnplannedRequests: unplannedPending,
	}, nil
}

// SetStatus applies the reviewer decision. Pending is the only state that
// accepts a transition, and approved/rejected are the only targets;
// auto-approved requests are terminal from birth and never revisited.
func (s *service) SetStatus(ctx context.Context, id, status string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("set leave status requested",
		zap.String("leave_id", id),
		zap.String("target_status", status),
	)

	if status != StatusApproved && status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidTargetStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		s.logger.Warn("set leave status invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	l.Status = status

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("set leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.stageDecidedEvent(ctx, tx, rid, l); err != nil {
		s.logger.Error("set leave status outbox event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set leave status commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("set leave status success",
		zap.String("leave_id", id),
		zap.String("status", status),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, limit, offset int) ([]LeaveResponse, int64, error) {
	requests, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) stageDecidedEvent(ctx context.Context, tx *sql.Tx, requestID string, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveDecidedEvent{
		EventType:  "leave.decided",
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		Days:       l.Days,
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// isCapped reports whether the type counts against the annual limit.
func isCapped(leaveType string) bool {
	return leaveType == TypeSick || leaveType == TypeCasual
}

// decideStatus implements the approval policy: capped single-day requests
// are approved on the spot, everything else waits for a reviewer.
func decideStatus(leaveType string, days int) string {
	if isCapped(leaveType) && days == 1 {
		return StatusAutoApproved
	}
	return StatusPending
}

// calendarYear returns Jan 1 and Dec 31 of t's year in UTC.
func calendarYear(t time.Time) (time.Time, time.Time) {
	year := t.Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// validateSubmitRequest checks fields and the date range before any balance
// computation or directory lookup happens. The days value is taken as the
// caller supplied it and is not cross-checked against the date span.
func validateSubmitRequest(req SubmitLeaveRequest) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.Identifier) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrEmptyIdentifier
	}

	switch req.LeaveType {
	case TypeSick, TypeCasual, TypePlanned, TypeUnplanned:
	default:
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}

	if req.Days <= 0 {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDays
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}

	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Days:         l.Days,
		Description:  l.Description,
		Status:       l.Status,
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !l.UpdatedAt.IsZero() {
		resp.UpdatedAt = l.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
