package domain

// Record is one personnel entry from the organization roster.
// Records are immutable after load and owned by the roster store.
type Record struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	EmploymentType string `json:"employment_type"`
	Department     string `json:"department"`
	Role           string `json:"role"`
	HireDate       string `json:"hire_date"`
	Skills         string `json:"skills"`
	Qualifications string `json:"qualifications"`
}
