package domain

import "time"

// Department represents a unit within an office (e.g. HR, IT).
type Department struct {
	ID        string
	OfficeID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Designation is a job title within a department. OfficeID is derived from the department.
type Designation struct {
	ID           string
	DepartmentID string
	OfficeID     string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
