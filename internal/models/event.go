package models

import "time"

// Inventory event types published after a successful mutation.
const (
	EventUserRegistered = "user.registered"
	EventAisleCreated   = "aisle.created"
	EventAisleUpdated   = "aisle.updated"
	EventAisleDeleted   = "aisle.deleted"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// InventoryEvent describes a committed change to the inventory.
type InventoryEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   uint      `json:"entity_id"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
