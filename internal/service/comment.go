package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// Comments manages free-text product reviews.
type Comments struct {
	comments model.CommentStore
	logger   *logger.Logger
}

func NewComments(comments model.CommentStore, logger *logger.Logger) *Comments {
	return &Comments{
		comments: comments,
		logger:   logger,
	}
}

// Add stores a review for the user.
func (c *Comments) Add(ctx context.Context, userID uuid.UUID, text string) (model.Comment, error) {
	comment, err := c.comments.Create(ctx, model.Comment{
		ID:     uuid.New(),
		UserID: userID,
		Text:   text,
	})
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// List returns reviews with author names, newest first.
func (c *Comments) List(ctx context.Context, offset, limit int) ([]model.CommentWithAuthor, error) {
	return c.comments.List(ctx, offset, limit)
}
