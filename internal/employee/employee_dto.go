package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Position       string `json:"position"`
	HireDate       string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Position       string `json:"position,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
}

// EmployeeOption is the trimmed shape used by dropdowns and by other modules
// stamping denormalized names.
type EmployeeOption struct {
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
