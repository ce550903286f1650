// internal/models/events.go

// Package models holds the store-write event payloads shared between the
// consumer and the worker handlers.
package models

// Event type names as published on the event bus channels.
const (
	EventOrderCreated        = "orders.created"
	EventNotificationCreated = "notifications.created"
)

// OrderCreatedEvent is the payload published when an order record is written.
// The address block may be missing when the client has not finished writing
// the order yet.
type OrderCreatedEvent struct {
	ID            string        `json:"id"`
	PaymentStatus string        `json:"payment_status,omitempty"`
	Address       *OrderAddress `json:"address,omitempty"`
}

type OrderAddress struct {
	Name         string `json:"name,omitempty"`
	FlatNo       string `json:"flatNo,omitempty"`
	BuildingName string `json:"buildingName,omitempty"`
}

// NotificationCreatedEvent is the payload published when a notification
// record is written for a user.
type NotificationCreatedEvent struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
}
