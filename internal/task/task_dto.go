package task

type CreateTaskRequest struct {
	ProjectID  string `json:"project_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required"`
	AssigneeID string `json:"assignee_id" binding:"required"`
	DueDate    string `json:"due_date"`
}

type SetTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Title      string `json:"title"`
	AssigneeID string `json:"assignee_id"`
	Status     string `json:"status"`
	DueDate    string `json:"due_date,omitempty"`
}
