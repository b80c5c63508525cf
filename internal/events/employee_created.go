package events

import "time"

const EmployeeCreatedTopic = "hr.employee.created.v1"

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	OccurredAt     time.Time `json:"occurred_at"`
}
