package attendance

type PunchInRequest struct {
	Notes *string `json:"notes"`
}

type PunchOutRequest struct {
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	PunchIn        string  `json:"punch_in"`
	PunchOut       *string `json:"punch_out,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
}
