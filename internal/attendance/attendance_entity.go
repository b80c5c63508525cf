package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     string         `gorm:"type:varchar(20);not null;index:idx_attendances_employee_date"`
	AttendanceDate time.Time      `gorm:"type:date;not null;index:idx_attendances_employee_date"`
	PunchIn        time.Time      `gorm:"type:timestamptz;not null"`
	PunchOut       *time.Time     `gorm:"type:timestamptz"`
	Status         string         `gorm:"type:varchar(20);not null;default:'present'"`
	Notes          *string        `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
