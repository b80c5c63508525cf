package events

import "time"

const LeaveDecidedTopic = "hr.leave.decided.v1"

// LeaveDecidedEvent is emitted whenever a leave request reaches a terminal
// status, whether auto-approved at submission or decided by a reviewer.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Days       int       `json:"days"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
