package dto

import (
	"time"

	"github.com/invento/inventory-api/internal/domain"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

const dateLayout = "2006-01-02"

// EmployeeRequest payload for employee create and update.
type EmployeeRequest struct {
	OfficeID      string  `json:"office_id" validate:"omitempty,uuid"`
	UserID        *string `json:"user_id" validate:"omitempty,uuid"`
	DepartmentID  *string `json:"department_id" validate:"omitempty,uuid"`
	DesignationID *string `json:"designation_id" validate:"omitempty,uuid"`
	FirstName     string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName      string  `json:"last_name" validate:"required,min=1,max=100"`
	MobileNumber  *string `json:"mobile_number" validate:"omitempty,min=7,max=20"`
	DateOfBirth   string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	HireDate      string  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

// Fields returns the parsed values of a validated request.
func (r EmployeeRequest) Fields() (EmployeeFields, error) {
	out := EmployeeFields{
		OfficeID:      r.OfficeID,
		UserID:        r.UserID,
		DepartmentID:  r.DepartmentID,
		DesignationID: r.DesignationID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		MobileNumber:  r.MobileNumber,
	}
	var err error
	if out.DateOfBirth, err = parseDate("date_of_birth", r.DateOfBirth); err != nil {
		return out, err
	}
	if out.HireDate, err = parseDate("hire_date", r.HireDate); err != nil {
		return out, err
	}
	if r.Gender != "" {
		g := domain.Gender(r.Gender)
		out.Gender = &g
	}
	return out, nil
}

// EmployeeFields is the typed form of EmployeeRequest.
type EmployeeFields struct {
	OfficeID      string
	UserID        *string
	DepartmentID  *string
	DesignationID *string
	FirstName     string
	LastName      string
	MobileNumber  *string
	DateOfBirth   *time.Time
	Gender        *domain.Gender
	HireDate      *time.Time
}

func parseDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, apperrors.NewValidationError("payload validation failed", map[string]any{field: "datetime=" + dateLayout})
	}
	return &t, nil
}

type EmployeeResponse struct {
	ID            string    `json:"id"`
	OfficeID      string    `json:"office_id"`
	UserID        *string   `json:"user_id,omitempty"`
	DepartmentID  *string   `json:"department_id,omitempty"`
	DesignationID *string   `json:"designation_id,omitempty"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	MobileNumber  *string   `json:"mobile_number,omitempty"`
	DateOfBirth   *string   `json:"date_of_birth,omitempty"`
	Gender        *string   `json:"gender,omitempty"`
	HireDate      *string   `json:"hire_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		OfficeID:      e.OfficeID,
		UserID:        e.UserID,
		DepartmentID:  e.DepartmentID,
		DesignationID: e.DesignationID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		MobileNumber:  e.MobileNumber,
		DateOfBirth:   formatDate(e.DateOfBirth),
		HireDate:      formatDate(e.HireDate),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Gender != nil {
		g := string(*e.Gender)
		resp.Gender = &g
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
