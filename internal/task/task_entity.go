package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(200);not null"`
	AssigneeID string    `gorm:"type:varchar(20);not null;index"`
	Status     string    `gorm:"type:varchar(20);not null;default:'todo'"`
	DueDate    *time.Time
	RemindedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}
