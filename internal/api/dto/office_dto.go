package dto

import (
	"time"

	"github.com/invento/inventory-api/internal/domain"
)

// OfficeRequest is used for both create and update. Update treats empty fields as unchanged.
type OfficeRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

// Office converts the request into a domain office.
func (r OfficeRequest) Office() domain.Office {
	return domain.Office{Name: r.Name, Address: r.Address, City: r.City, State: r.State, Country: r.Country}
}

type OfficeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewOfficeResponse(o *domain.Office) OfficeResponse {
	return OfficeResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		City:      o.City,
		State:     o.State,
		Country:   o.Country,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
