package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

const orderColumns = `id, user_id, is_closed, created_at, closed_at`

// GetOrCreateOpen returns the user's open order, creating one if absent.
// The insert races through the partial unique index on (user_id) WHERE NOT
// is_closed, so concurrent calls converge on the same row.
func (r *OrderRepository) GetOrCreateOpen(ctx context.Context, userID uuid.UUID) (model.Order, error) {
	query := `WITH ins AS (
				INSERT INTO orders (id, user_id)
				VALUES ($1, $2)
				ON CONFLICT (user_id) WHERE NOT is_closed DO NOTHING
				RETURNING ` + orderColumns + `
			  )
			  SELECT ` + orderColumns + ` FROM ins
			  UNION ALL
			  SELECT ` + orderColumns + ` FROM orders WHERE user_id = $2 AND NOT is_closed
			  LIMIT 1`

	var order model.Order
	err := r.db.QueryRow(ctx, query, uuid.New(), userID).Scan(
		&order.ID, &order.UserID, &order.IsClosed, &order.CreatedAt, &order.ClosedAt,
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get or create open order: %w", err)
	}

	return order, nil
}

// Lines returns the order's lines joined with their products. Rows with
// zero quantity or a non-positive price snapshot are filtered out.
func (r *OrderRepository) Lines(ctx context.Context, orderID uuid.UUID) ([]model.CartLine, error) {
	query := `SELECT l.id, l.order_id, l.product_id, l.quantity, l.price_cents,
					 p.title,
					 CASE WHEN p.image_file <> '' THEN p.image_file ELSE p.image_url END
			  FROM order_lines l
			  JOIN products p ON p.id = l.product_id
			  WHERE l.order_id = $1 AND l.quantity > 0 AND l.price_cents > 0
			  ORDER BY p.title`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.PriceCents,
			&line.ProductTitle, &line.ProductImage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order line row: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// UpsertLine adds one unit of the product to the order. On first insert the
// line snapshots priceCents; on conflict only the quantity is bumped, so
// later catalog price changes never touch the snapshot.
func (r *OrderRepository) UpsertLine(ctx context.Context, orderID, productID uuid.UUID, priceCents int64) (model.OrderLine, error) {
	query := `INSERT INTO order_lines (id, order_id, product_id, quantity, price_cents)
			  VALUES ($1, $2, $3, 1, $4)
			  ON CONFLICT (order_id, product_id)
			  DO UPDATE SET quantity = order_lines.quantity + 1
			  RETURNING id, order_id, product_id, quantity, price_cents`

	var line model.OrderLine
	err := r.db.QueryRow(ctx, query, uuid.New(), orderID, productID, priceCents).Scan(
		&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.PriceCents,
	)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("failed to upsert order line: %w", err)
	}

	return line, nil
}

func (r *OrderRepository) IncrementLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	query := `UPDATE order_lines SET quantity = quantity + 1 WHERE id = $1 AND order_id = $2`

	tag, err := r.db.Exec(ctx, query, lineID, orderID)
	if err != nil {
		return fmt.Errorf("failed to increment order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// DecrementLine decreases the line's quantity by one and deletes the row
// when it reaches zero; zero-quantity lines never persist.
func (r *OrderRepository) DecrementLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var quantity int32
	err = tx.QueryRow(ctx,
		`UPDATE order_lines SET quantity = quantity - 1
		 WHERE id = $1 AND order_id = $2 AND quantity > 0
		 RETURNING quantity`,
		lineID, orderID,
	).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to decrement order line: %w", err)
	}

	if quantity == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE id = $1`, lineID); err != nil {
			return fmt.Errorf("failed to delete empty order line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) DeleteLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	query := `DELETE FROM order_lines WHERE id = $1 AND order_id = $2`

	tag, err := r.db.Exec(ctx, query, lineID, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Close marks the order closed and queues its notification event in the
// same transaction. Either both happen or neither does: a failed close
// queues nothing, and a closed order always has its notification queued.
func (r *OrderRepository) Close(ctx context.Context, orderID uuid.UUID, event model.OutboxEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE orders SET is_closed = TRUE, closed_at = now() WHERE id = $1 AND NOT is_closed`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to close order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (event_id, topic, payload) VALUES ($1, $2, $3)`,
		event.EventID, event.Topic, event.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to queue order notification: %w", err)
	}

	return tx.Commit(ctx)
}
