package webctx

import (
	"context"

	"github.com/dkozyrev/sneakershop/internal/model"
)

type contextKey int

const userKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager carries the authenticated user in request context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
