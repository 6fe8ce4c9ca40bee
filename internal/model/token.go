package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and validates authentication tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, string, error)
}

// RefreshTokenStore defines persistence operations for refresh tokens.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByKey(ctx context.Context, key string) (RefreshToken, error)
	DeleteByKey(ctx context.Context, key string) error
}

// RefreshToken is a stored long-lived credential keyed by the token JTI.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenKey  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry.
func (t RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
