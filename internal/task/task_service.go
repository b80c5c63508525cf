package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"lemonpay/internal/events"
	"lemonpay/internal/messaging/kafka"
	"lemonpay/internal/shared/contextutil"
	taskerrors "lemonpay/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// statusRank orders the task lifecycle; transitions may only increase it.
var statusRank = map[string]int{
	StatusTodo:       0,
	StatusInProgress: 1,
	StatusDone:       2,
}

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, projectID string) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (TaskResponse, error)
	GetByAssignee(ctx context.Context, assigneeID string) ([]TaskResponse, error)
	SetStatus(ctx context.Context, id string, req SetTaskStatusRequest) (TaskResponse, error)
	RemindDue(ctx context.Context, horizon time.Duration) (int, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	var due *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return TaskResponse{}, taskerrors.ErrInvalidDueDate
		}
		due = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Task{
		ID:         uuid.New(),
		ProjectID:  uuid.MustParse(req.ProjectID),
		Title:      req.Title,
		AssigneeID: req.AssigneeID,
		Status:     StatusTodo,
		DueDate:    due,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("task_id", t.ID.String()),
		zap.String("assignee_id", t.AssigneeID),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, projectID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return mapAll(tasks), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) GetByAssignee(ctx context.Context, assigneeID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindByAssignee(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	return mapAll(tasks), nil
}

func (s *service) SetStatus(ctx context.Context, id string, req SetTaskStatusRequest) (TaskResponse, error) {
	newRank, ok := statusRank[req.Status]
	if !ok {
		return TaskResponse{}, taskerrors.ErrUnknownStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	if newRank <= statusRank[t.Status] {
		return TaskResponse{}, taskerrors.ErrBackwardTransition
	}

	t.Status = req.Status
	if err := qtx.Update(ctx, t); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task status updated",
		zap.String("task_id", t.ID.String()),
		zap.String("status", t.Status),
	)
	return mapToResponse(*t), nil
}

// RemindDue stages a reminder event for every open task whose due date falls
// within the horizon, then marks it so the next sweep skips it.
func (s *service) RemindDue(ctx context.Context, horizon time.Duration) (int, error) {
	now := time.Now().UTC()
	due, err := s.repo.FindDueForReminder(ctx, now.Add(horizon))
	if err != nil {
		return 0, err
	}

	reminded := 0
	for _, t := range due {
		if err := s.stageReminder(ctx, t, now); err != nil {
			s.logger.Error("stage due reminder failed",
				zap.String("task_id", t.ID.String()),
				zap.Error(err),
			)
			continue
		}
		reminded++
	}
	return reminded, nil
}

func (s *service) stageReminder(ctx context.Context, t Task, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	evt := events.TaskDueReminderEvent{
		EventType:  "task.due-reminder",
		TaskID:     t.ID.String(),
		ProjectID:  t.ProjectID.String(),
		Title:      t.Title,
		AssigneeID: t.AssigneeID,
		DueDate:    t.DueDate.Format("2006-01-02"),
		OccurredAt: now,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	err = s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "task",
		AggregateID:   t.ID.String(),
		EventType:     evt.EventType,
		Topic:         events.TaskDueReminderTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return err
	}
	if err := s.repo.WithTx(tx).MarkReminded(ctx, t.ID.String(), now); err != nil {
		return err
	}
	return tx.Commit()
}

func mapAll(tasks []Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:         t.ID.String(),
		ProjectID:  t.ProjectID.String(),
		Title:      t.Title,
		AssigneeID: t.AssigneeID,
		Status:     t.Status,
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format("2006-01-02")
	}
	return resp
}
