package note

type CreateNoteRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type UpdateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

type NoteResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	AuthorID   string `json:"author_id"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}
