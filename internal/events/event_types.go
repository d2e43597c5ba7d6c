package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/invento/inventory-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// AnyEvent subscribes a handler to every event type.
	AnyEvent EventType = "*"

	EventInventoryCreated       EventType = "inventory_created"
	EventInventoryIssued        EventType = "inventory_issued"
	EventInventoryReturned      EventType = "inventory_returned"
	EventInventoryStatusChanged EventType = "inventory_status_changed"
	EventInventoryDeleted       EventType = "inventory_deleted"
	EventUserRegistered         EventType = "user_registered"
	EventUserCreated            EventType = "user_created"
	EventUserDeleted            EventType = "user_deleted"
	EventRolePermissionsChanged EventType = "role_permissions_changed"
)

// Actor identifies who triggered an event.
type Actor struct {
	SubjectID string `json:"subject_id,omitempty"`
	Role      string `json:"role,omitempty"`
}

// ActorFrom builds an actor from a resolved identity. A nil identity is the system.
func ActorFrom(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{Role: "system"}
	}
	return Actor{SubjectID: identity.SubjectID, Role: identity.RoleName}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID string    `json:"resource_id"`
	OfficeID   string    `json:"office_id,omitempty"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID, officeID string, actor Actor, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		OfficeID:   officeID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// InventoryIssuedPayload payload.
type InventoryIssuedPayload struct {
	IssuedTo string `json:"issued_to"`
	IssuedBy string `json:"issued_by"`
}

// InventoryStatusChangedPayload payload.
type InventoryStatusChangedPayload struct {
	OldStatus domain.InventoryStatus `json:"old_status"`
	NewStatus domain.InventoryStatus `json:"new_status"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RolePermissionsChangedPayload payload.
type RolePermissionsChangedPayload struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
