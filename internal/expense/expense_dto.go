package expense

type SubmitExpenseRequest struct {
	Identifier   string `json:"identifier" binding:"required"`
	Category     string `json:"category" binding:"required,oneof=travel meals equipment software other"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	IncurredDate string `json:"incurred_date" binding:"required"`
	Description  string `json:"description"`
}

type SetExpenseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ExpenseResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Category     string `json:"category"`
	AmountCents  int64  `json:"amount_cents"`
	IncurredDate string `json:"incurred_date"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status"`
}
