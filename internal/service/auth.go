package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
	"github.com/dkozyrev/sneakershop/internal/token"
)

// RegisterForm carries raw registration input.
type RegisterForm struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	Avatar          string
}

// TokenPair is an issued access/refresh credential pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Auth handles registration, login, activation and profile updates.
type Auth struct {
	users         model.UserStore
	refreshTokens model.RefreshTokenStore
	outbox        model.OutboxStore
	tokenManager  model.TokenManager
	logger        *logger.Logger
}

func NewAuth(
	users model.UserStore,
	refreshTokens model.RefreshTokenStore,
	outbox model.OutboxStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:         users,
		refreshTokens: refreshTokens,
		outbox:        outbox,
		tokenManager:  tokenManager,
		logger:        logger,
	}
}

func (a *Auth) validate(ctx context.Context, form RegisterForm, checkEmail bool) model.FieldErrors {
	var fieldErrors model.FieldErrors

	if checkEmail {
		if form.Email == "" || !strings.Contains(form.Email, "@") {
			fieldErrors = append(fieldErrors, "please enter a valid email")
		} else if _, err := a.users.GetByEmail(ctx, form.Email); err == nil {
			fieldErrors = append(fieldErrors, "user with this email already exists")
		}
	}
	if len(form.Name) < 3 {
		fieldErrors = append(fieldErrors, "please enter a name of at least 3 characters")
	}
	if len(form.Password) < 8 {
		fieldErrors = append(fieldErrors, "please enter a password of at least 8 characters")
	}
	if form.Password != form.PasswordConfirm {
		fieldErrors = append(fieldErrors, "password confirmation did not match")
	}

	return fieldErrors
}

// Register validates the form, creates the user and queues a verification
// email. The first registered user becomes an admin. Validation failures are
// returned as model.FieldErrors; a duplicate email that slips past
// validation surfaces as model.ErrConflict from the store.
func (a *Auth) Register(ctx context.Context, form RegisterForm) (model.User, error) {
	if fieldErrors := a.validate(ctx, form, true); len(fieldErrors) > 0 {
		return model.User{}, fieldErrors
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := a.users.Count(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to count users: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:             uuid.New(),
		Email:          form.Email,
		Name:           form.Name,
		HashedPassword: string(hashed),
		Avatar:         form.Avatar,
		IsAdmin:        count == 0,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"is_admin", user.IsAdmin)

	payload, err := json.Marshal(model.VerificationPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal verification payload: %w", err)
	}

	// Delivery is a queued job; a failed enqueue is logged but does not
	// undo the registration.
	err = a.outbox.Insert(ctx, model.OutboxEvent{
		EventID: uuid.New(),
		Topic:   model.TopicUserRegistered,
		Payload: payload,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to queue verification email",
			"user_id", user.ID,
			"error", err.Error())
	}

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair,
// persisting the refresh token.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, TokenPair, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, TokenPair{}, model.ErrInvalidCredentials
		}
		return model.User{}, TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return model.User{}, TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.issueTokens(ctx, user.ID)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return user, pair, nil
}

func (a *Auth) issueTokens(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	access, err := a.tokenManager.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, jti, err := a.tokenManager.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = a.refreshTokens.Create(ctx, model.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenKey:  jti,
		ExpiresAt: time.Now().Add(token.RefreshTTL),
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Activate marks the user's account verified. Activating an already
// verified account returns the user unchanged.
func (a *Auth) Activate(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.users.MarkVerified(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to activate account: %w", err)
	}

	a.logger.Info("Auth service: account activated", "user_id", user.ID)

	return user, nil
}

// UpdateProfile validates and applies profile changes for the user.
func (a *Auth) UpdateProfile(ctx context.Context, userID uuid.UUID, form RegisterForm) (model.User, error) {
	if fieldErrors := a.validate(ctx, form, false); len(fieldErrors) > 0 {
		return model.User{}, fieldErrors
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Update(ctx, userID, model.UserUpdate{
		Name:           form.Name,
		Avatar:         form.Avatar,
		HashedPassword: string(hashed),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
