package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderRepository(t *testing.T) {
	db := &Connection{}
	repo := NewOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
