package domain

import (
	"errors"
	"fmt"
	"time"
)

// InventoryStatus enumerates lifecycle states for an item.
type InventoryStatus string

const (
	InventoryAvailable InventoryStatus = "available"
	InventoryIssued    InventoryStatus = "issued"
	InventoryRepair    InventoryStatus = "repair"
	InventoryDisposed  InventoryStatus = "disposed"
)

// Valid reports whether s is a known status.
func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryAvailable, InventoryIssued, InventoryRepair, InventoryDisposed:
		return true
	}
	return false
}

// ItemType enumerates the kinds of items tracked.
type ItemType string

const (
	ItemPane     ItemType = "pane"
	ItemNotebook ItemType = "notebook"
	ItemChair    ItemType = "chair"
	ItemLaptop   ItemType = "laptop"
	ItemTV       ItemType = "tv"
	ItemAV       ItemType = "av"
	ItemFan      ItemType = "fan"
	ItemMobile   ItemType = "mobile"
	ItemCharger  ItemType = "charger"
	ItemPendrive ItemType = "pandrive"
)

// ErrInvalidTransition is returned when a status change is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid inventory status transition")

// InventoryItem is a tracked asset. IssuedTo and IssuedDate are set iff Status is issued.
type InventoryItem struct {
	ID           string
	OfficeID     string
	Name         string
	Description  string
	Qty          int
	ItemType     ItemType
	SerialNumber string
	BillNumber   string
	Value        *float64
	IsReusable   bool
	Remarks      string
	Status       InventoryStatus
	IssuedTo     *string
	IssuedBy     *string
	IssuedDate   *time.Time
	ReturnDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Issue hands an available item to a user.
func (i *InventoryItem) Issue(issuedTo, issuedBy string, at time.Time) error {
	if i.Status != InventoryAvailable {
		return fmt.Errorf("%w: cannot issue item in status %s", ErrInvalidTransition, i.Status)
	}
	if issuedTo == "" {
		return fmt.Errorf("%w: issued_to is required", ErrInvalidTransition)
	}
	to, by, when := issuedTo, issuedBy, at
	i.IssuedTo = &to
	i.IssuedBy = &by
	i.IssuedDate = &when
	i.ReturnDate = nil
	i.Status = InventoryIssued
	return nil
}

// Return takes an issued item back into stock.
func (i *InventoryItem) Return(at time.Time) error {
	if i.Status != InventoryIssued {
		return fmt.Errorf("%w: cannot return item in status %s", ErrInvalidTransition, i.Status)
	}
	when := at
	i.clearIssue()
	i.ReturnDate = &when
	i.Status = InventoryAvailable
	return nil
}

// SetStatus moves the item to repair, disposed or back to available. Issuing goes through Issue.
func (i *InventoryItem) SetStatus(status InventoryStatus, at time.Time) error {
	if !status.Valid() || status == InventoryIssued {
		return fmt.Errorf("%w: unsupported target status %q", ErrInvalidTransition, status)
	}
	if i.Status == InventoryDisposed && status != InventoryDisposed {
		return fmt.Errorf("%w: disposed items cannot be reactivated", ErrInvalidTransition)
	}
	if i.Status == InventoryIssued {
		when := at
		i.ReturnDate = &when
	}
	i.clearIssue()
	i.Status = status
	return nil
}

func (i *InventoryItem) clearIssue() {
	i.IssuedTo = nil
	i.IssuedBy = nil
	i.IssuedDate = nil
}
