package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/mocks"
	"github.com/dkozyrev/sneakershop/internal/model"
)

func TestSession_Resolve_ValidAccessToken(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}
	refreshTokens := &mocks.RefreshTokenStore{}
	tokenManager := &mocks.TokenManager{}

	userID := uuid.New()
	tokenManager.On("ParseAccessToken", "good-access").Return(userID, nil)
	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Name: "A"}, nil)

	s := NewSession(users, refreshTokens, tokenManager, logger.New(0))
	user, newAccess, err := s.Resolve(ctx, "good-access", "")
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Empty(t, newAccess)
}

func TestSession_Resolve_RotatesViaRefreshToken(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserStore{}
	refreshTokens := &mocks.RefreshTokenStore{}
	tokenManager := &mocks.TokenManager{}

	userID := uuid.New()
	tokenManager.On("ParseAccessToken", "expired-access").Return(uuid.Nil, assert.AnError)
	tokenManager.On("ParseRefreshToken", "good-refresh").Return(userID, "jti-1", nil)
	refreshTokens.On("GetByKey", mock.Anything, "jti-1").
		Return(model.RefreshToken{ID: uuid.New(), UserID: userID, TokenKey: "jti-1"}, nil)
	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
	tokenManager.On("GenerateAccessToken", userID).Return("fresh-access", nil)

	s := NewSession(users, refreshTokens, tokenManager, logger.New(0))
	user, newAccess, err := s.Resolve(ctx, "expired-access", "good-refresh")
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "fresh-access", newAccess)
}

func TestSession_Resolve_NoCredentials(t *testing.T) {
	s := NewSession(&mocks.UserStore{}, &mocks.RefreshTokenStore{}, &mocks.TokenManager{}, logger.New(0))

	_, _, err := s.Resolve(context.Background(), "", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSession_Resolve_RevokedRefreshToken(t *testing.T) {
	ctx := context.Background()
	refreshTokens := &mocks.RefreshTokenStore{}
	tokenManager := &mocks.TokenManager{}

	userID := uuid.New()
	tokenManager.On("ParseRefreshToken", "revoked").Return(userID, "jti-gone", nil)
	refreshTokens.On("GetByKey", mock.Anything, "jti-gone").Return(model.RefreshToken{}, model.ErrNotFound)

	s := NewSession(&mocks.UserStore{}, refreshTokens, tokenManager, logger.New(0))
	_, _, err := s.Resolve(ctx, "", "revoked")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSession_Resolve_RefreshTokenUserMismatch(t *testing.T) {
	ctx := context.Background()
	refreshTokens := &mocks.RefreshTokenStore{}
	tokenManager := &mocks.TokenManager{}

	tokenManager.On("ParseRefreshToken", "stolen").Return(uuid.New(), "jti-1", nil)
	refreshTokens.On("GetByKey", mock.Anything, "jti-1").
		Return(model.RefreshToken{ID: uuid.New(), UserID: uuid.New(), TokenKey: "jti-1"}, nil)

	s := NewSession(&mocks.UserStore{}, refreshTokens, tokenManager, logger.New(0))
	_, _, err := s.Resolve(ctx, "", "stolen")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSession_Revoke(t *testing.T) {
	ctx := context.Background()
	refreshTokens := &mocks.RefreshTokenStore{}
	tokenManager := &mocks.TokenManager{}

	tokenManager.On("ParseRefreshToken", "current").Return(uuid.New(), "jti-1", nil)
	refreshTokens.On("DeleteByKey", mock.Anything, "jti-1").Return(nil).Once()

	s := NewSession(&mocks.UserStore{}, refreshTokens, tokenManager, logger.New(0))
	require.NoError(t, s.Revoke(ctx, "current"))

	refreshTokens.AssertExpectations(t)
}

func TestSession_Revoke_EmptyTokenIsNoop(t *testing.T) {
	refreshTokens := &mocks.RefreshTokenStore{}

	s := NewSession(&mocks.UserStore{}, refreshTokens, &mocks.TokenManager{}, logger.New(0))
	require.NoError(t, s.Revoke(context.Background(), ""))

	refreshTokens.AssertNotCalled(t, "DeleteByKey", mock.Anything, mock.Anything)
}
