package domain

// Employee is a record as exchanged with the remote employee service.
// ID is chosen by the caller on creation; the service never assigns one.
type Employee struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Position      string   `json:"position"`
	HireDate      HireDate `json:"hireDate"`
	Active        bool     `json:"active"`
	DirectReports []int    `json:"directReports"`
}

// EmployeeDetail is the combined response of a single-employee lookup.
type EmployeeDetail struct {
	Employee      *Employee      `json:"employee"`
	DirectReports []DirectReport `json:"directReports"`
}

// Status returns the label shown for the active flag.
func (e Employee) Status() string {
	if e.Active {
		return "Active"
	}
	return "Inactive"
}
