package postgres

import (
	"context"
	"fmt"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, user_id, text_review)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, text_review, created_at`

	var saved model.Comment
	err := r.db.QueryRow(ctx, query, comment.ID, comment.UserID, comment.Text).Scan(
		&saved.ID, &saved.UserID, &saved.Text, &saved.CreatedAt,
	)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return saved, nil
}

func (r *CommentRepository) List(ctx context.Context, offset, limit int) ([]model.CommentWithAuthor, error) {
	if limit <= 0 {
		limit = 120
	}

	query := `SELECT c.id, c.user_id, c.text_review, c.created_at, u.name
			  FROM comments c
			  JOIN users u ON u.id = c.user_id
			  ORDER BY c.created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.CommentWithAuthor
	for rows.Next() {
		var comment model.CommentWithAuthor
		if err := rows.Scan(
			&comment.ID, &comment.UserID, &comment.Text, &comment.CreatedAt, &comment.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
