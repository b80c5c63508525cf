package expense

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *ExpenseClaim) error
	FindAll(ctx context.Context, limit, offset int) ([]ExpenseClaim, int64, error)
	FindByID(ctx context.Context, id string) (*ExpenseClaim, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]ExpenseClaim, error)
	Update(ctx context.Context, e *ExpenseClaim) error
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

// conn binds gorm to the caller's transaction when one is set, so the claim
// write commits or rolls back together with the outbox insert.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, e *ExpenseClaim) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, limit, offset int) ([]ExpenseClaim, int64, error) {
	var claims []ExpenseClaim
	var total int64

	if err := r.conn(ctx).Model(&ExpenseClaim{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.conn(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ExpenseClaim, error) {
	var e ExpenseClaim
	err := r.conn(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]ExpenseClaim, error) {
	var claims []ExpenseClaim
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&claims).Error
	return claims, err
}

func (r *repository) Update(ctx context.Context, e *ExpenseClaim) error {
	return r.conn(ctx).Save(e).Error
}
