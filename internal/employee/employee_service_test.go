package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lemonpay/internal/employee"
	employeeerrors "lemonpay/internal/employee/errors"
	countermock "lemonpay/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, e *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findByIdentifierFn func(ctx context.Context, identifier string, byEmail bool) (*employee.Employee, error)
	updateFn           func(ctx context.Context, e *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIdentifier(ctx context.Context, identifier string, byEmail bool) (*employee.Employee, error) {
	if f.findByIdentifierFn != nil {
		return f.findByIdentifierFn(ctx, identifier, byEmail)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	createRequest := func() employee.CreateEmployeeRequest {
		return employee.CreateEmployeeRequest{
			FullName: "Ada Park",
			Email:    "Ada@Lemonpay.dev",
			Position: "Engineer",
			HireDate: "2024-06-01",
		}
	}

	t.Run("success generates the next employee number", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		counterRepo := countermock.NewMockRepository(ctrl)
		counterRepo.EXPECT().GetNextValue(gomock.Any(), "employee_number").Return(int64(7), nil)

		repo := &fakeEmployeeRepository{}
		var created *employee.Employee
		repo.createFn = func(_ context.Context, e *employee.Employee) error {
			created = e
			return nil
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := employee.NewService(db, repo, counterRepo, nil)
		resp, err := svc.Create(ctx, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "E007", resp.EmployeeNumber)
		assert.NotNil(t, created)
		// Emails are normalized to lower case at the boundary.
		assert.Equal(t, "ada@lemonpay.dev", created.Email)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("success keeps a caller-supplied employee number", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		counterRepo := countermock.NewMockRepository(ctrl)
		// No GetNextValue expectation: the counter must not be consulted.

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		req := createRequest()
		req.EmployeeNumber = "E042"

		svc := employee.NewService(db, &fakeEmployeeRepository{}, counterRepo, nil)
		resp, err := svc.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "E042", resp.EmployeeNumber)
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		counterRepo := countermock.NewMockRepository(ctrl)

		req := createRequest()
		req.HireDate = "June 1st"

		svc := employee.NewService(db, &fakeEmployeeRepository{}, counterRepo, nil)
		_, err = svc.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative duplicate email maps unique violation", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		counterRepo := countermock.NewMockRepository(ctrl)
		counterRepo.EXPECT().GetNextValue(gomock.Any(), "employee_number").Return(int64(8), nil)

		repo := &fakeEmployeeRepository{
			createFn: func(_ context.Context, _ *employee.Employee) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		svc := employee.NewService(db, repo, counterRepo, nil)
		_, err = svc.Create(ctx, createRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmployee)
	})

	t.Run("negative counter failure aborts", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		ctrl := gomock.NewController(t)
		counterRepo := countermock.NewMockRepository(ctrl)
		counterRepo.EXPECT().GetNextValue(gomock.Any(), "employee_number").Return(int64(0), errors.New("counter down"))

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		createCalled := false
		repo := &fakeEmployeeRepository{
			createFn: func(_ context.Context, _ *employee.Employee) error {
				createCalled = true
				return nil
			},
		}

		svc := employee.NewService(db, repo, counterRepo, nil)
		_, err = svc.Create(ctx, createRequest())

		assert.Error(t, err)
		assert.False(t, createCalled)
	})
}

func TestEmployeeService_Lookup(t *testing.T) {
	ctx := context.Background()

	newService := func(repo employee.Repository) employee.Service {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return employee.NewService(db, repo, nil, nil)
	}

	t.Run("success by employee number", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIdentifierFn: func(_ context.Context, identifier string, byEmail bool) (*employee.Employee, error) {
				assert.Equal(t, "e001", identifier)
				assert.False(t, byEmail)
				return &employee.Employee{
					ID:             uuid.New(),
					EmployeeNumber: "E001",
					FullName:       "Ada Park",
					Email:          "ada@lemonpay.dev",
					HireDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		opt, err := newService(repo).Lookup(ctx, "e001")

		assert.NoError(t, err)
		assert.Equal(t, "E001", opt.EmployeeNumber)
		assert.Equal(t, "Ada Park", opt.FullName)
	})

	t.Run("success email routes to the email column", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIdentifierFn: func(_ context.Context, identifier string, byEmail bool) (*employee.Employee, error) {
				assert.Equal(t, "ADA@Lemonpay.dev", identifier)
				assert.True(t, byEmail)
				return &employee.Employee{EmployeeNumber: "E001", FullName: "Ada Park"}, nil
			},
		}

		opt, err := newService(repo).Lookup(ctx, "ADA@Lemonpay.dev")

		assert.NoError(t, err)
		assert.Equal(t, "E001", opt.EmployeeNumber)
	})

	t.Run("negative empty identifier", func(t *testing.T) {
		_, err := newService(&fakeEmployeeRepository{}).Lookup(ctx, "  ")

		assert.ErrorIs(t, err, employeeerrors.ErrEmptyIdentifier)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIdentifierFn: func(_ context.Context, _ string, _ bool) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		_, err := newService(repo).Lookup(ctx, "E999")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache miss populates redis", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()

		options := []employee.EmployeeOption{
			{EmployeeNumber: "E001", FullName: "Ada Park"},
			{EmployeeNumber: "E002", FullName: "Ben Osei"},
		}
		payload, err := json.Marshal(options)
		assert.NoError(t, err)

		redisMock.ExpectGet("employees:options").RedisNil()
		redisMock.ExpectSet("employees:options", payload, 10*time.Minute).SetVal("OK")

		repo := &fakeEmployeeRepository{
			findAllFn: func(_ context.Context) ([]employee.Employee, error) {
				return []employee.Employee{
					{EmployeeNumber: "E001", FullName: "Ada Park"},
					{EmployeeNumber: "E002", FullName: "Ben Osei"},
				}, nil
			},
		}

		svc := employee.NewService(db, repo, nil, rdb)
		got, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache hit skips the database", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()

		options := []employee.EmployeeOption{{EmployeeNumber: "E001", FullName: "Ada Park"}}
		payload, err := json.Marshal(options)
		assert.NoError(t, err)

		redisMock.ExpectGet("employees:options").SetVal(string(payload))

		findAllCalled := false
		repo := &fakeEmployeeRepository{
			findAllFn: func(_ context.Context) ([]employee.Employee, error) {
				findAllCalled = true
				return nil, nil
			},
		}

		svc := employee.NewService(db, repo, nil, rdb)
		got, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, got)
		assert.False(t, findAllCalled)
	})
}
