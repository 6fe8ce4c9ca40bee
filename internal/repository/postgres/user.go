package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, name, hashed_password, avatar, is_admin, verified_at, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, name, hashed_password, avatar, is_admin)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	var saved model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Name, user.HashedPassword, user.Avatar, user.IsAdmin,
	).Scan(
		&saved.ID, &saved.Email, &saved.Name, &saved.HashedPassword, &saved.Avatar,
		&saved.IsAdmin, &saved.VerifiedAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if conflictErr := normalizeConflict(err); errors.Is(conflictErr, model.ErrConflict) {
			return model.User{}, conflictErr
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.Avatar,
		&user.IsAdmin, &user.VerifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.Avatar,
		&user.IsAdmin, &user.VerifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	query := `UPDATE users
			  SET name = $2, avatar = $3, hashed_password = $4, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	var user model.User
	err := r.db.QueryRow(ctx, query, id, update.Name, update.Avatar, update.HashedPassword).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.Avatar,
		&user.IsAdmin, &user.VerifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// MarkVerified sets verified_at once; verifying an already-verified user
// leaves the original timestamp in place.
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `UPDATE users
			  SET verified_at = COALESCE(verified_at, now()), updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.Avatar,
		&user.IsAdmin, &user.VerifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to mark user verified: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
