package leave

type SubmitLeaveRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	LeaveType   string `json:"leave_type" binding:"required,oneof=sick casual planned unplanned"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Days        int    `json:"days" binding:"required,gt=0"`
	Description string `json:"description"`
}

// SetLeaveStatusRequest carries the reviewer decision. The target status is
// validated by the service so disallowed values report INVALID_TRANSITION
// rather than a generic validation error.
type SetLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Days         int    `json:"days"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

type SubmitLeaveResponse struct {
	Leave           LeaveResponse `json:"leave"`
	RemainingSick   int           `json:"remaining_sick"`
	RemainingCasual int           `json:"remaining_casual"`
}

type BalanceResponse struct {
	Sick              int `json:"sick"`
	Casual            int `json:"casual"`
	PlannedRequests   int `json:"planned_requests"`
	UnplannedRequests int `json:"unplanned_requests"`
}
