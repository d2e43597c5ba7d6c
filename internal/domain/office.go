package domain

import "time"

// Office is the tenant boundary: users, employees, departments and inventory belong to exactly one.
type Office struct {
	ID        string
	Name      string
	Address   string
	City      string
	State     string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
