package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderLine_TotalCents(t *testing.T) {
	line := OrderLine{Quantity: 3, PriceCents: 1250}
	assert.Equal(t, int64(3750), line.TotalCents())
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, RefreshToken{ExpiresAt: now.Add(time.Hour)}.Expired(now))
	assert.True(t, RefreshToken{ExpiresAt: now.Add(-time.Hour)}.Expired(now))
	assert.True(t, RefreshToken{ExpiresAt: now}.Expired(now))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{"first", "second"}
	assert.Equal(t, "first; second", fe.Error())

	wrapped := fmt.Errorf("register: %w", fe)
	got, ok := AsFieldErrors(wrapped)
	assert.True(t, ok)
	assert.Equal(t, fe, got)

	_, ok = AsFieldErrors(errors.New("plain"))
	assert.False(t, ok)
}

func TestProduct_Deleted(t *testing.T) {
	now := time.Now()

	assert.False(t, Product{}.Deleted())
	assert.True(t, Product{DeletedAt: &now}.Deleted())
}
