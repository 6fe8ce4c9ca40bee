package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dkozyrev/sneakershop/internal/model"
)

func TestConnection_PingNilPool(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}

func Test_normalizeConflict(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolation}
	assert.ErrorIs(t, normalizeConflict(unique), model.ErrConflict)

	other := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, normalizeConflict(other), model.ErrConflict)

	plain := errors.New("boom")
	assert.Equal(t, plain, normalizeConflict(plain))
}
