package webctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dkozyrev/sneakershop/internal/model"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager()
	user := model.User{ID: uuid.New(), Name: "A"}

	ctx := m.SetUserToContext(context.Background(), user)

	got, ok := m.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_MissingUser(t *testing.T) {
	m := NewManager()

	_, ok := m.GetUserFromContext(context.Background())
	assert.False(t, ok)
}
