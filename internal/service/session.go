package service

import (
	"context"
	"fmt"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// Session resolves the current user from request credentials.
type Session struct {
	users         model.UserStore
	refreshTokens model.RefreshTokenStore
	tokenManager  model.TokenManager
	logger        *logger.Logger
}

func NewSession(
	users model.UserStore,
	refreshTokens model.RefreshTokenStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Session {
	return &Session{
		users:         users,
		refreshTokens: refreshTokens,
		tokenManager:  tokenManager,
		logger:        logger,
	}
}

// Resolve returns the user for the given access token, falling back to the
// refresh token when the access token is missing or expired. When the
// refresh path is taken a fresh access token is returned for re-issuing the
// cookie; otherwise the returned access token is empty.
func (s *Session) Resolve(ctx context.Context, accessToken, refreshToken string) (model.User, string, error) {
	if accessToken != "" {
		userID, err := s.tokenManager.ParseAccessToken(accessToken)
		if err == nil {
			user, err := s.users.GetByID(ctx, userID)
			if err != nil {
				return model.User{}, "", fmt.Errorf("failed to get user by id: %w", err)
			}
			return user, "", nil
		}
	}

	if refreshToken == "" {
		return model.User{}, "", model.ErrNotFound
	}

	userID, jti, err := s.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.User{}, "", model.ErrNotFound
	}

	stored, err := s.refreshTokens.GetByKey(ctx, jti)
	if err != nil || stored.UserID != userID {
		return model.User{}, "", model.ErrNotFound
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by id: %w", err)
	}

	newAccess, err := s.tokenManager.GenerateAccessToken(userID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to rotate access token: %w", err)
	}

	s.logger.Debug("Session service: access token rotated", "user_id", userID)

	return user, newAccess, nil
}

// Revoke drops the stored refresh token on logout.
func (s *Session) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	_, jti, err := s.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	return s.refreshTokens.DeleteByKey(ctx, jti)
}
