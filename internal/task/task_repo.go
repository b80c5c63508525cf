package task

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	FindAll(ctx context.Context, projectID string) ([]Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByAssignee(ctx context.Context, assigneeID string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	FindDueForReminder(ctx context.Context, until time.Time) ([]Task, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
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

// conn binds gorm to the caller's transaction when one is set, so the row
// write commits or rolls back together with the rest of the transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, projectID string) ([]Task, error) {
	var tasks []Task
	q := r.conn(ctx).Order("created_at ASC")
	if projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.conn(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindByAssignee(ctx context.Context, assigneeID string) ([]Task, error) {
	var tasks []Task
	err := r.conn(ctx).
		Where("assignee_id = ?", assigneeID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.conn(ctx).Save(t).Error
}

// FindDueForReminder returns open tasks due on or before the cutoff that
// have not been reminded yet.
func (r *repository) FindDueForReminder(ctx context.Context, until time.Time) ([]Task, error) {
	var tasks []Task
	err := r.conn(ctx).
		Where("status <> ?", "done").
		Where("due_date IS NOT NULL AND due_date <= ?", until).
		Where("reminded_at IS NULL").
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	return r.conn(ctx).
		Model(&Task{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}
