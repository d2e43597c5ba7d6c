package dto

import (
	"time"

	"github.com/invento/inventory-api/internal/domain"
)

type DepartmentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	OfficeID string `json:"office_id" validate:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	OfficeID  string    `json:"office_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, OfficeID: d.OfficeID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// DesignationRequest creates or updates a designation. The office follows the department.
type DesignationRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=100"`
	DepartmentID string `json:"department_id" validate:"required,uuid"`
}

type DesignationResponse struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	OfficeID     string    `json:"office_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewDesignationResponse(d *domain.Designation) DesignationResponse {
	return DesignationResponse{
		ID:           d.ID,
		DepartmentID: d.DepartmentID,
		OfficeID:     d.OfficeID,
		Title:        d.Title,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
