package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, limit, offset int) ([]LeaveRequest, int64, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error

	// SumDays totals the days column for one employee and leave type across
	// the given statuses, counting requests whose start_date falls inside
	// [from, to]. Balances are always recomputed from this query, never
	// cached, so they stay consistent with the request history.
	SumDays(ctx context.Context, employeeID, leaveType string, statuses []string, from, to time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds gorm to the caller's transaction when one is set, so the
// balance reads and the row write commit or roll back together with the
// outbox insert.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, limit, offset int) ([]LeaveRequest, int64, error) {
	var requests []LeaveRequest
	var total int64

	if err := r.conn(ctx).Model(&LeaveRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.conn(ctx).
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) SumDays(ctx context.Context, employeeID, leaveType string, statuses []string, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(days)").
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		Where("status IN ?", statuses).
		Where("start_date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
