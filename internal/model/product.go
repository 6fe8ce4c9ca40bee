package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductStore defines persistence operations for catalog products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Product is a catalog item. Products are never removed from the table;
// a set deleted_at hides them from every catalog read.
type Product struct {
	ID         uuid.UUID
	Title      string
	PriceCents int64
	ImageURL   string
	ImageFile  string
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// Deleted reports whether the product has been soft-deleted.
func (p Product) Deleted() bool {
	return p.DeletedAt != nil
}

// ProductFilter narrows catalog listings. Query is a case-insensitive
// substring match on the title; zero Limit falls back to DefaultPageSize.
type ProductFilter struct {
	Query  string
	Offset int
	Limit  int
}

// DefaultPageSize is the catalog page size when none is requested.
const DefaultPageSize = 12
