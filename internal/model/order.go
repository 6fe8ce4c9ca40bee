package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStore defines persistence operations for orders and their lines.
//
// GetOrCreateOpen and UpsertLine are idempotent upserts guarded by unique
// constraints, so concurrent first-touch requests converge on a single row.
type OrderStore interface {
	GetOrCreateOpen(ctx context.Context, userID uuid.UUID) (Order, error)
	Lines(ctx context.Context, orderID uuid.UUID) ([]CartLine, error)
	UpsertLine(ctx context.Context, orderID, productID uuid.UUID, priceCents int64) (OrderLine, error)
	IncrementLine(ctx context.Context, orderID, lineID uuid.UUID) error
	DecrementLine(ctx context.Context, orderID, lineID uuid.UUID) error
	DeleteLine(ctx context.Context, orderID, lineID uuid.UUID) error
	Close(ctx context.Context, orderID uuid.UUID, event OutboxEvent) error
}

// Order is a user's cart while open and a terminal record once closed.
// At most one open order exists per user at any time.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IsClosed  bool
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// OrderLine pairs an order with a product. PriceCents is snapshotted when
// the product is first added and never re-synced with the catalog price.
type OrderLine struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	Quantity   int32
	PriceCents int64
}

// CartLine is an order line joined with its product for display.
type CartLine struct {
	OrderLine
	ProductTitle string
	ProductImage string
}

// TotalCents is the line's quantity-weighted price.
func (l OrderLine) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}
