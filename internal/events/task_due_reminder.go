package events

import "time"

const TaskDueReminderTopic = "pm.task.due-reminder.v1"

type TaskDueReminderEvent struct {
	EventType  string    `json:"event_type"`
	TaskID     string    `json:"task_id"`
	ProjectID  string    `json:"project_id"`
	Title      string    `json:"title"`
	AssigneeID string    `json:"assignee_id"`
	DueDate    string    `json:"due_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
