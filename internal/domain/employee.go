package domain

import "time"

// Gender values accepted for employees.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Employee holds HR data for a person working at an office.
type Employee struct {
	ID            string
	UserID        *string
	OfficeID      string
	DepartmentID  *string
	DesignationID *string
	FirstName     string
	LastName      string
	MobileNumber  *string
	DateOfBirth   *time.Time
	Gender        *Gender
	HireDate      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
