package dto

import (
	"time"

	"github.com/invento/inventory-api/internal/domain"
)

// CreateInventoryRequest payload for adding an item.
type CreateInventoryRequest struct {
	OfficeID     string   `json:"office_id" validate:"omitempty,uuid"`
	Name         string   `json:"name" validate:"required,min=1,max=150"`
	Description  string   `json:"description" validate:"omitempty,max=500"`
	Qty          *int     `json:"qty" validate:"omitempty,min=0"`
	ItemType     string   `json:"item_type" validate:"required,oneof=pane notebook chair laptop tv av fan mobile charger pandrive"`
	SerialNumber string   `json:"serial_number" validate:"omitempty,max=100"`
	BillNumber   string   `json:"bill_number" validate:"omitempty,max=100"`
	Value        *float64 `json:"value" validate:"omitempty,min=0"`
	IsReusable   *bool    `json:"is_reusable"`
	Remarks      string   `json:"remarks" validate:"omitempty,max=500"`
}

// UpdateInventoryRequest payload for editing item attributes. Status changes use dedicated endpoints.
type UpdateInventoryRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	Qty          *int     `json:"qty" validate:"omitempty,min=0"`
	ItemType     *string  `json:"item_type" validate:"omitempty,oneof=pane notebook chair laptop tv av fan mobile charger pandrive"`
	SerialNumber *string  `json:"serial_number" validate:"omitempty,max=100"`
	BillNumber   *string  `json:"bill_number" validate:"omitempty,max=100"`
	Value        *float64 `json:"value" validate:"omitempty,min=0"`
	IsReusable   *bool    `json:"is_reusable"`
	Remarks      *string  `json:"remarks" validate:"omitempty,max=500"`
}

type IssueInventoryRequest struct {
	IssuedTo string `json:"issued_to" validate:"required,uuid"`
}

type InventoryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available repair disposed"`
}

// InventoryQuery adds inventory specific filters to ListQuery.
type InventoryQuery struct {
	ListQuery
	Status   string `query:"status" validate:"omitempty,oneof=available issued repair disposed"`
	ItemType string `query:"item_type" validate:"omitempty,oneof=pane notebook chair laptop tv av fan mobile charger pandrive"`
}

type InventoryResponse struct {
	ID           string     `json:"id"`
	OfficeID     string     `json:"office_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Qty          int        `json:"qty"`
	ItemType     string     `json:"item_type"`
	SerialNumber string     `json:"serial_number,omitempty"`
	BillNumber   string     `json:"bill_number,omitempty"`
	Value        *float64   `json:"value,omitempty"`
	IsReusable   bool       `json:"is_reusable"`
	Remarks      string     `json:"remarks,omitempty"`
	Status       string     `json:"status"`
	IssuedTo     *string    `json:"issued_to,omitempty"`
	IssuedBy     *string    `json:"issued_by,omitempty"`
	IssuedDate   *time.Time `json:"issued_date,omitempty"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewInventoryResponse(i *domain.InventoryItem) InventoryResponse {
	return InventoryResponse{
		ID:           i.ID,
		OfficeID:     i.OfficeID,
		Name:         i.Name,
		Description:  i.Description,
		Qty:          i.Qty,
		ItemType:     string(i.ItemType),
		SerialNumber: i.SerialNumber,
		BillNumber:   i.BillNumber,
		Value:        i.Value,
		IsReusable:   i.IsReusable,
		Remarks:      i.Remarks,
		Status:       string(i.Status),
		IssuedTo:     i.IssuedTo,
		IssuedBy:     i.IssuedBy,
		IssuedDate:   i.IssuedDate,
		ReturnDate:   i.ReturnDate,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
