package note

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=note_repo.go -destination=mock/note_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Note) error
	FindByEmployee(ctx context.Context, employeeID string) ([]Note, error)
	FindByID(ctx context.Context, id string) (*Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Note, error) {
	var notes []Note
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Note, error) {
	var n Note
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) Update(ctx context.Context, n *Note) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Note{}, "id = ?", id).Error
}
