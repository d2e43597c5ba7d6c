package dto

import (
	"time"

	"github.com/invento/inventory-api/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for self-registration.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,min=7,max=20"`
	OfficeID     string `json:"office_id" validate:"required,uuid"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      IdentityResponse `json:"user"`
}

// IdentityResponse describes the authenticated subject.
type IdentityResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role"`
	OfficeID    string   `json:"office_id"`
	Permissions []string `json:"permissions"`
}

// NewIdentityResponse maps a resolved identity.
func NewIdentityResponse(i *domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:          i.SubjectID,
		Email:       i.Email,
		Name:        i.Name,
		Role:        i.RoleName,
		OfficeID:    i.OfficeID,
		Permissions: i.Permissions.Slice(),
	}
}

// CreateUserRequest payload for administrative account creation.
type CreateUserRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,min=7,max=20"`
	OfficeID     string `json:"office_id" validate:"omitempty,uuid"`
	Role         string `json:"role" validate:"omitempty,max=50"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateUserRequest payload for account updates. Omitted fields are unchanged.
type UpdateUserRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2,max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Password     string `json:"password" validate:"omitempty,min=6,max=72"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,min=7,max=20"`
	OfficeID     string `json:"office_id" validate:"omitempty,uuid"`
	Role         string `json:"role" validate:"omitempty,max=50"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse is the public view of an account. The password hash is never exposed.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	OfficeID     string    `json:"office_id"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		OfficeID:     u.OfficeID,
		Role:         u.RoleName,
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
