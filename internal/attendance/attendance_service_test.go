package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"lemonpay/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn                func(tx *sql.Tx) attendance.Repository
	createFn                func(ctx context.Context, a *attendance.Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID string) ([]attendance.Attendance, error)
	findAllFn               func(ctx context.Context) ([]attendance.Attendance, error)
	updateFn                func(ctx context.Context, a *attendance.Attendance) error
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	svc := attendance.NewService(db, repo)

	return &attendanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func TestAttendanceService_PunchIn(t *testing.T) {
	ctx := context.Background()

	t.Run("success first punch of the day", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *attendance.Attendance
		deps.repo.createFn = func(_ context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		resp, err := deps.service.PunchIn(ctx, "E001", attendance.PunchInRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "E001", resp.EmployeeID)
		assert.Contains(t, []string{"present", "late"}, resp.Status)
		assert.Nil(t, resp.PunchOut)
	})

	t.Run("negative second punch conflicts", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByEmployeeAndDateFn = func(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: uuid.New(), EmployeeID: "E001"}, nil
		}

		createCalled := false
		deps.repo.createFn = func(_ context.Context, _ *attendance.Attendance) error {
			createCalled = true
			return nil
		}

		_, err := deps.service.PunchIn(ctx, "E001", attendance.PunchInRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already punched in")
		assert.False(t, createCalled)
	})

	t.Run("negative lookup failure surfaces", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByEmployeeAndDateFn = func(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
			return nil, errors.New("query failed")
		}

		_, err := deps.service.PunchIn(ctx, "E001", attendance.PunchInRequest{})

		assert.Error(t, err)
	})
}

func TestAttendanceService_PunchOut(t *testing.T) {
	ctx := context.Background()

	t.Run("success closes the open punch", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		punchIn := time.Now().UTC().Add(-4 * time.Hour)
		deps.repo.findByEmployeeAndDateFn = func(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:             uuid.New(),
				EmployeeID:     "E001",
				AttendanceDate: punchIn.Truncate(24 * time.Hour),
				PunchIn:        punchIn,
				Status:         "present",
			}, nil
		}

		var updated *attendance.Attendance
		deps.repo.updateFn = func(_ context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.PunchOut(ctx, "E001", attendance.PunchOutRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.NotNil(t, updated.PunchOut)
		assert.NotNil(t, resp.PunchOut)
	})

	t.Run("negative no punch in today", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.PunchOut(ctx, "E001", attendance.PunchOutRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no open punch")
	})

	t.Run("negative already punched out", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		out := time.Now().UTC()
		deps.repo.findByEmployeeAndDateFn = func(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:         uuid.New(),
				EmployeeID: "E001",
				PunchIn:    out.Add(-8 * time.Hour),
				PunchOut:   &out,
			}, nil
		}

		_, err := deps.service.PunchOut(ctx, "E001", attendance.PunchOutRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no open punch")
	})
}
