package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) (User, error)
	Count(ctx context.Context) (int64, error)
}

// User represents a registered shop user.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
	Avatar         string
	IsAdmin        bool
	VerifiedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Verified reports whether the user completed email verification.
func (u User) Verified() bool {
	return u.VerifiedAt != nil
}

// UserUpdate carries mutable profile fields.
type UserUpdate struct {
	Name           string
	Avatar         string
	HashedPassword string
}
