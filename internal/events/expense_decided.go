package events

import "time"

const ExpenseDecidedTopic = "hr.expense.decided.v1"

type ExpenseDecidedEvent struct {
	EventType   string    `json:"event_type"`
	ExpenseID   string    `json:"expense_id"`
	EmployeeID  string    `json:"employee_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
