package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox topics for queued notification jobs.
const (
	TopicUserRegistered = "user.registered"
	TopicOrderClosed    = "order.closed"
)

// OutboxStore defines persistence operations for queued notification
// events. Events stay pending until marked sent, so a failed delivery is
// retried on the next dispatcher sweep.
type OutboxStore interface {
	Insert(ctx context.Context, event OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
}

// OutboxEvent is one queued notification.
type OutboxEvent struct {
	ID        int64
	EventID   uuid.UUID
	Topic     string
	Payload   json.RawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}

// VerificationPayload is the payload of a TopicUserRegistered event.
type VerificationPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// OrderClosedPayload is the payload of a TopicOrderClosed event. Lines are
// captured by value at close time.
type OrderClosedPayload struct {
	OrderID       uuid.UUID         `json:"order_id"`
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	Lines         []OrderLineRecord `json:"lines"`
	SubtotalCents int64             `json:"subtotal_cents"`
	ShippingCents int64             `json:"shipping_cents"`
	TotalCents    int64             `json:"total_cents"`
}

// OrderLineRecord is a closed line as captured in the notification payload.
type OrderLineRecord struct {
	Title      string `json:"title"`
	Quantity   int32  `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}
