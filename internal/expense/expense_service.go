package expense

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"lemonpay/internal/events"
	expenseerrors "lemonpay/internal/expense/errors"
	"lemonpay/internal/leave"
	"lemonpay/internal/messaging/kafka"
	"lemonpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitExpenseRequest) (ExpenseResponse, error)
	GetAll(ctx context.Context, limit, offset int) ([]ExpenseResponse, int64, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ExpenseResponse, error)
	SetStatus(ctx context.Context, id, status string) (ExpenseResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory leave.Directory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory leave.Directory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitExpenseRequest) (ExpenseResponse, error) {
	incurred, err := time.Parse("2006-01-02", req.IncurredDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidIncurredDate
	}
	if incurred.After(time.Now().UTC()) {
		return ExpenseResponse{}, expenseerrors.ErrIncurredInFuture
	}

	entry, err := s.directory.Lookup(ctx, req.Identifier)
	if err != nil {
		return ExpenseResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &ExpenseClaim{
		ID:           uuid.New(),
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.FullName,
		Category:     req.Category,
		AmountCents:  req.AmountCents,
		IncurredDate: incurred,
		Description:  req.Description,
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("submit expense persist failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	s.logger.Info("submit expense success",
		zap.String("expense_id", e.ID.String()),
		zap.String("employee_id", e.EmployeeID),
		zap.Int64("amount_cents", e.AmountCents),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, limit, offset int) ([]ExpenseResponse, int64, error) {
	claims, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ExpenseResponse, len(claims))
	for i, e := range claims {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ExpenseResponse, error) {
	claims, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]ExpenseResponse, len(claims))
	for i, e := range claims {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

// SetStatus decides a pending claim. Decided claims are immutable.
func (s *service) SetStatus(ctx context.Context, id, status string) (ExpenseResponse, error) {
	if status != StatusApproved && status != StatusRejected {
		return ExpenseResponse{}, expenseerrors.ErrInvalidTargetStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}
	if e.Status != StatusPending {
		return ExpenseResponse{}, expenseerrors.ErrNotPending
	}

	e.Status = status
	if err := qtx.Update(ctx, e); err != nil {
		return ExpenseResponse{}, err
	}
	if err := s.stageDecidedEvent(ctx, tx, e); err != nil {
		return ExpenseResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	s.logger.Info("expense decided",
		zap.String("expense_id", e.ID.String()),
		zap.String("status", e.Status),
	)
	return mapToResponse(*e), nil
}

func (s *service) stageDecidedEvent(ctx context.Context, tx *sql.Tx, e *ExpenseClaim) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ExpenseDecidedEvent{
		EventType:   "expense.decided",
		ExpenseID:   e.ID.String(),
		EmployeeID:  e.EmployeeID,
		AmountCents: e.AmountCents,
		Status:      e.Status,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "expense_claim",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ExpenseDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(e ExpenseClaim) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID.String(),
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Category:     e.Category,
		AmountCents:  e.AmountCents,
		IncurredDate: e.IncurredDate.Format("2006-01-02"),
		Description:  e.Description,
		Status:       e.Status,
	}
}
