package expense_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"lemonpay/internal/expense"
	expenseerrors "lemonpay/internal/expense/errors"
	"lemonpay/internal/leave"
	"lemonpay/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeExpenseRepository struct {
	withTxFn         func(tx *sql.Tx) expense.Repository
	createFn         func(ctx context.Context, e *expense.ExpenseClaim) error
	findAllFn        func(ctx context.Context, limit, offset int) ([]expense.ExpenseClaim, int64, error)
	findByIDFn       func(ctx context.Context, id string) (*expense.ExpenseClaim, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]expense.ExpenseClaim, error)
	updateFn         func(ctx context.Context, e *expense.ExpenseClaim) error
}

func (f *fakeExpenseRepository) WithTx(tx *sql.Tx) expense.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeExpenseRepository) Create(ctx context.Context, e *expense.ExpenseClaim) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeExpenseRepository) FindAll(ctx context.Context, limit, offset int) ([]expense.ExpenseClaim, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeExpenseRepository) FindByID(ctx context.Context, id string) (*expense.ExpenseClaim, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) FindByEmployee(ctx context.Context, employeeID string) ([]expense.ExpenseClaim, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) Update(ctx context.Context, e *expense.ExpenseClaim) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

type fakeDirectory struct {
	lookupFn func(ctx context.Context, identifier string) (leave.DirectoryEntry, error)
}

func (f *fakeDirectory) Lookup(ctx context.Context, identifier string) (leave.DirectoryEntry, error) {
	if f.lookupFn != nil {
		return f.lookupFn(ctx, identifier)
	}
	return leave.DirectoryEntry{EmployeeID: "E001", FullName: "Ada Park"}, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error {
	return nil
}

type expenseServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service expense.Service
	repo    *fakeExpenseRepository
	outbox  *fakeOutboxRepository
}

func setupExpenseServiceTest(t *testing.T) *expenseServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeExpenseRepository{}
	outbox := &fakeOutboxRepository{}
	svc := expense.NewService(db, repo, &fakeDirectory{}, outbox)

	return &expenseServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func submitExpense() expense.SubmitExpenseRequest {
	return expense.SubmitExpenseRequest{
		Identifier:   "E001",
		Category:     "travel",
		AmountCents:  12550,
		IncurredDate: "2025-08-01",
		Description:  "client visit",
	}
}

func TestExpenseService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts pending with denormalized name", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *expense.ExpenseClaim
		deps.repo.createFn = func(_ context.Context, e *expense.ExpenseClaim) error {
			created = e
			return nil
		}

		resp, err := deps.service.Submit(ctx, submitExpense())

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, expense.StatusPending, resp.Status)
		assert.Equal(t, "E001", resp.EmployeeID)
		assert.Equal(t, "Ada Park", resp.EmployeeName)
		assert.Equal(t, int64(12550), resp.AmountCents)
	})

	t.Run("negative malformed incurred date", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()

		req := submitExpense()
		req.IncurredDate = "01/08/2025"

		_, err := deps.service.Submit(ctx, req)

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidIncurredDate)
	})

	t.Run("negative future incurred date", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()

		req := submitExpense()
		req.IncurredDate = time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

		_, err := deps.service.Submit(ctx, req)

		assert.ErrorIs(t, err, expenseerrors.ErrIncurredInFuture)
	})
}

func TestExpenseService_SetStatus(t *testing.T) {
	ctx := context.Background()

	pendingClaim := func() *expense.ExpenseClaim {
		return &expense.ExpenseClaim{
			ID:           uuid.New(),
			EmployeeID:   "E001",
			EmployeeName: "Ada Park",
			Category:     "travel",
			AmountCents:  12550,
			IncurredDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Status:       expense.StatusPending,
		}
	}

	t.Run("success approve stages decided event", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(_ context.Context, _ string) (*expense.ExpenseClaim, error) {
			return pendingClaim(), nil
		}

		var staged *kafka.OutboxEvent
		deps.outbox.createFn = func(_ context.Context, event kafka.OutboxEvent) error {
			staged = &event
			return nil
		}

		resp, err := deps.service.SetStatus(ctx, uuid.New().String(), expense.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, expense.StatusApproved, resp.Status)
		assert.NotNil(t, staged)
		assert.Equal(t, "hr.expense.decided.v1", staged.Topic)
		assert.Equal(t, "expense.decided", staged.EventType)
	})

	t.Run("negative invalid target status", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.SetStatus(ctx, uuid.New().String(), "escalated")

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidTargetStatus)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		claim := pendingClaim()
		claim.Status = expense.StatusApproved
		deps.repo.findByIDFn = func(_ context.Context, _ string) (*expense.ExpenseClaim, error) {
			return claim, nil
		}

		_, err := deps.service.SetStatus(ctx, claim.ID.String(), expense.StatusRejected)

		assert.ErrorIs(t, err, expenseerrors.ErrNotPending)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupExpenseServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(_ context.Context, _ string) (*expense.ExpenseClaim, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.SetStatus(ctx, uuid.New().String(), expense.StatusApproved)

		assert.ErrorIs(t, err, expenseerrors.ErrExpenseNotFound)
	})
}
