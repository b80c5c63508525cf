package expense

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseClaim struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"type:varchar(20);not null;index"`
	EmployeeName string    `gorm:"type:varchar(150);not null"`
	Category     string    `gorm:"type:varchar(30);not null"`
	AmountCents  int64     `gorm:"not null"`
	IncurredDate time.Time `gorm:"type:date;not null"`
	Description  string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ExpenseClaim) TableName() string {
	return "expense_claims"
}
