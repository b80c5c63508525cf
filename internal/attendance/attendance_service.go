package attendance

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"lemonpay/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statusPresent = "present"
	statusLate    = "late"
)

var (
	errAlreadyPunchedIn = apperror.New(
		apperror.CodeConflict,
		"already punched in for today",
		http.StatusConflict,
	)
	errNoOpenPunch = apperror.New(
		apperror.CodeInvalidTransition,
		"no open punch for today",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	PunchIn(ctx context.Context, employeeID string, req PunchInRequest) (AttendanceResponse, error)
	PunchOut(ctx context.Context, employeeID string, req PunchOutRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// PunchIn opens today's attendance row. One punch per employee per day;
// punches after 09:15 UTC are marked late.
func (s *service) PunchIn(ctx context.Context, employeeID string, req PunchInRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, errAlreadyPunchedIn
	}

	status := statusPresent
	if now.Hour() > 9 || (now.Hour() == 9 && now.Minute() > 15) {
		status = statusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AttendanceDate: today,
		PunchIn:        now,
		Status:         status,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("punch in persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("punch in recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

// PunchOut closes today's open punch.
func (s *service) PunchOut(ctx context.Context, employeeID string, req PunchOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, errNoOpenPunch
		}
		return AttendanceResponse{}, err
	}
	if row.PunchOut != nil {
		return AttendanceResponse{}, errNoOpenPunch
	}

	row.PunchOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("punch out persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("punch out recorded", zap.String("employee_id", employeeID))
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID,
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		PunchIn:        a.PunchIn.Format(time.RFC3339),
		Status:         a.Status,
		Notes:          a.Notes,
	}
	if a.PunchOut != nil {
		v := a.PunchOut.Format(time.RFC3339)
		resp.PunchOut = &v
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
