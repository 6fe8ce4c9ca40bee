package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token_key, expires_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, token.ID, token.UserID, token.TokenKey, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByKey returns the token only while it is still valid.
func (r *RefreshTokenRepository) GetByKey(ctx context.Context, key string) (model.RefreshToken, error) {
	query := `SELECT id, user_id, token_key, expires_at, created_at
			  FROM refresh_tokens WHERE token_key = $1 AND expires_at > now()`

	var token model.RefreshToken
	err := r.db.QueryRow(ctx, query, key).Scan(
		&token.ID, &token.UserID, &token.TokenKey, &token.ExpiresAt, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by key: %w", err)
	}

	return token, nil
}

func (r *RefreshTokenRepository) DeleteByKey(ctx context.Context, key string) error {
	query := `DELETE FROM refresh_tokens WHERE token_key = $1`

	_, err := r.db.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
