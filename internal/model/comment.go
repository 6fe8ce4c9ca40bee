package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommentStore defines persistence operations for product reviews.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) (Comment, error)
	List(ctx context.Context, offset, limit int) ([]CommentWithAuthor, error)
}

// Comment is a free-text review left by a user.
type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
}

// CommentWithAuthor is a comment joined with its author's display name.
type CommentWithAuthor struct {
	Comment
	AuthorName string
}
