package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest is created once at submission and mutated at most once, when
// a reviewer decides a pending request. Rows are never deleted.
type LeaveRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// EmployeeID is the business identifier (employee number), resolved
	// from the directory at submission time. EmployeeName is denormalized
	// and deliberately not kept in sync with later renames.
	EmployeeID   string `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee_type"`
	EmployeeName string `gorm:"type:varchar(150);not null"`

	LeaveType   string    `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee_type"`
	StartDate   time.Time `gorm:"type:date;not null;index"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Days        int       `gorm:"type:int;not null"`
	Description string    `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
