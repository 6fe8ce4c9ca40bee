package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// ShippingPercent is the flat shipping fee charged on the cart subtotal.
const ShippingPercent = 5

// CartView is the rendered state of a user's open order.
type CartView struct {
	Order         model.Order
	Lines         []model.CartLine
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
}

// Cart manages the user's single open order and its line items, and
// finalizes checkout.
type Cart struct {
	orders   model.OrderStore
	products model.ProductStore
	logger   *logger.Logger
}

func NewCart(orders model.OrderStore, products model.ProductStore, logger *logger.Logger) *Cart {
	return &Cart{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// Open returns the user's open order, creating it on first touch.
func (c *Cart) Open(ctx context.Context, userID uuid.UUID) (model.Order, error) {
	return c.orders.GetOrCreateOpen(ctx, userID)
}

// Contents returns the open order's lines with subtotal, shipping and total.
func (c *Cart) Contents(ctx context.Context, userID uuid.UUID) (CartView, error) {
	order, err := c.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	lines, err := c.orders.Lines(ctx, order.ID)
	if err != nil {
		return CartView{}, err
	}

	return newCartView(order, lines), nil
}

func newCartView(order model.Order, lines []model.CartLine) CartView {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.TotalCents()
	}
	shipping := subtotal * ShippingPercent / 100

	return CartView{
		Order:         order,
		Lines:         lines,
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TotalCents:    subtotal + shipping,
	}
}

// AddProduct puts one unit of the product into the user's open order. The
// line's price is snapshotted from the product's current price on first add
// only. Adding a missing or soft-deleted product is a no-op.
func (c *Cart) AddProduct(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	order, err := c.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return err
	}

	line, err := c.orders.UpsertLine(ctx, order.ID, product.ID, product.PriceCents)
	if err != nil {
		return err
	}

	c.logger.Debug("Cart service: product added",
		"user_id", userID,
		"product_id", productID,
		"quantity", line.Quantity)

	return nil
}

// IncreaseQuantity bumps the line's quantity by one. A missing line is a
// no-op.
func (c *Cart) IncreaseQuantity(ctx context.Context, userID, lineID uuid.UUID) error {
	order, err := c.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.orders.IncrementLine(ctx, order.ID, lineID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

// DecreaseQuantity lowers the line's quantity by one, deleting the line
// when it reaches zero. A missing line is a no-op.
func (c *Cart) DecreaseQuantity(ctx context.Context, userID, lineID uuid.UUID) error {
	order, err := c.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.orders.DecrementLine(ctx, order.ID, lineID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

// RemoveLine deletes the line from the user's open order regardless of
// quantity. A missing line is a no-op.
func (c *Cart) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	order, err := c.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.orders.DeleteLine(ctx, order.ID, lineID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

// Checkout closes the user's open order and queues the confirmation email
// in the same transaction. An order with no lines is left open and nothing
// is queued; the returned bool reports whether a close happened. After a
// close the next cart touch starts a fresh open order.
func (c *Cart) Checkout(ctx context.Context, user model.User) (model.Order, bool, error) {
	order, err := c.orders.GetOrCreateOpen(ctx, user.ID)
	if err != nil {
		return model.Order{}, false, err
	}

	lines, err := c.orders.Lines(ctx, order.ID)
	if err != nil {
		return model.Order{}, false, err
	}
	if len(lines) == 0 {
		return order, false, nil
	}

	view := newCartView(order, lines)
	records := make([]model.OrderLineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, model.OrderLineRecord{
			Title:      line.ProductTitle,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
		})
	}

	payload, err := json.Marshal(model.OrderClosedPayload{
		OrderID:       order.ID,
		Email:         user.Email,
		Name:          user.Name,
		Lines:         records,
		SubtotalCents: view.SubtotalCents,
		ShippingCents: view.ShippingCents,
		TotalCents:    view.TotalCents,
	})
	if err != nil {
		return model.Order{}, false, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	err = c.orders.Close(ctx, order.ID, model.OutboxEvent{
		EventID: uuid.New(),
		Topic:   model.TopicOrderClosed,
		Payload: payload,
	})
	if err != nil {
		// Lost the close race or the write failed: the order stays open
		// and no notification is queued.
		if errors.Is(err, model.ErrNotFound) {
			return order, false, nil
		}
		return model.Order{}, false, err
	}

	c.logger.Info("Cart service: order closed",
		"user_id", user.ID,
		"order_id", order.ID,
		"total_cents", view.TotalCents)

	order.IsClosed = true
	return order, true, nil
}
