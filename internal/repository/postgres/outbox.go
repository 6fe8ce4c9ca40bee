package postgres

import (
	"context"
	"fmt"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.OutboxStore = (*OutboxRepository)(nil)

type OutboxRepository struct {
	db *Connection
}

func NewOutboxRepository(db *Connection) *OutboxRepository {
	return &OutboxRepository{
		db: db,
	}
}

func (r *OutboxRepository) Insert(ctx context.Context, event model.OutboxEvent) error {
	query := `INSERT INTO outbox (event_id, topic, payload) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, event.EventID, event.Topic, event.Payload)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}

	return nil
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	query := `SELECT id, event_id, topic, payload, created_at, sent_at
			  FROM outbox WHERE sent_at IS NULL ORDER BY id LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending outbox events: %w", err)
	}
	defer rows.Close()

	var events []model.OutboxEvent
	for rows.Next() {
		var event model.OutboxEvent
		if err := rows.Scan(
			&event.ID, &event.EventID, &event.Topic, &event.Payload, &event.CreatedAt, &event.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id int64) error {
	query := `UPDATE outbox SET sent_at = now() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event sent: %w", err)
	}

	return nil
}
