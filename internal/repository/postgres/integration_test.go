//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dkozyrev/sneakershop/internal/model"
	repo "github.com/dkozyrev/sneakershop/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "sneakershop_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/sneakershop_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(ctx context.Context, t *testing.T, ur *repo.UserRepository, email string) model.User {
	t.Helper()
	user, err := ur.Create(ctx, model.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           "Test User",
		HashedPassword: "hashed",
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	user := createUser(ctx, t, ur, "crud@example.com")

	_, err = ur.Create(ctx, model.User{
		ID:             uuid.New(),
		Email:          "crud@example.com",
		Name:           "Duplicate",
		HashedPassword: "hashed",
	})
	require.ErrorIs(t, err, model.ErrConflict)

	byEmail, err := ur.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Nil(t, byEmail.VerifiedAt)

	verified, err := ur.MarkVerified(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, verified.VerifiedAt)

	// Verifying again keeps the original timestamp.
	again, err := ur.MarkVerified(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, verified.VerifiedAt.Unix(), again.VerifiedAt.Unix())

	updated, err := ur.Update(ctx, user.ID, model.UserUpdate{
		Name:           "Renamed",
		Avatar:         "avatar.png",
		HashedPassword: "rehashed",
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)

	count, err := ur.Count(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, count, int64(1))

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductRepository_ListAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	pr := repo.NewProductRepository(conn)

	jordan, err := pr.Create(ctx, model.Product{ID: uuid.New(), Title: "Air Jordan 1", PriceCents: 18000})
	require.NoError(t, err)
	_, err = pr.Create(ctx, model.Product{ID: uuid.New(), Title: "Gazelle", PriceCents: 9000})
	require.NoError(t, err)

	matched, err := pr.List(ctx, model.ProductFilter{Query: "jordan"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, jordan.ID, matched[0].ID)

	all, err := pr.List(ctx, model.ProductFilter{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	require.NoError(t, pr.SoftDelete(ctx, jordan.ID))
	require.ErrorIs(t, pr.SoftDelete(ctx, jordan.ID), model.ErrNotFound)

	_, err = pr.GetByID(ctx, jordan.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	matched, err = pr.List(ctx, model.ProductFilter{Query: "jordan"})
	require.NoError(t, err)
	require.Empty(t, matched)
}

func TestOrderRepository_CartLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	pr := repo.NewProductRepository(conn)
	or := repo.NewOrderRepository(conn)

	user := createUser(ctx, t, ur, "cart@example.com")
	product, err := pr.Create(ctx, model.Product{ID: uuid.New(), Title: "Samba", PriceCents: 1000})
	require.NoError(t, err)

	order, err := or.GetOrCreateOpen(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, order.IsClosed)

	// A second touch returns the same open order.
	sameOrder, err := or.GetOrCreateOpen(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, sameOrder.ID)

	// Adding the same product twice bumps the quantity on one line.
	first, err := or.UpsertLine(ctx, order.ID, product.ID, product.PriceCents)
	require.NoError(t, err)
	second, err := or.UpsertLine(ctx, order.ID, product.ID, product.PriceCents)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int32(2), second.Quantity)

	// A later catalog price change never touches the snapshot.
	third, err := or.UpsertLine(ctx, order.ID, product.ID, 99999)
	require.NoError(t, err)
	require.Equal(t, int64(1000), third.PriceCents)

	lines, err := or.Lines(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, int32(3), lines[0].Quantity)
	require.Equal(t, "Samba", lines[0].ProductTitle)

	require.NoError(t, or.IncrementLine(ctx, order.ID, first.ID))
	require.NoError(t, or.DecrementLine(ctx, order.ID, first.ID))

	// Decrementing to zero removes the line entirely.
	for i := 0; i < 3; i++ {
		require.NoError(t, or.DecrementLine(ctx, order.ID, first.ID))
	}
	require.ErrorIs(t, or.DecrementLine(ctx, order.ID, first.ID), model.ErrNotFound)

	lines, err = or.Lines(ctx, order.ID)
	require.NoError(t, err)
	require.Empty(t, lines)

	line, err := or.UpsertLine(ctx, order.ID, product.ID, product.PriceCents)
	require.NoError(t, err)
	require.NoError(t, or.DeleteLine(ctx, order.ID, line.ID))
	require.ErrorIs(t, or.DeleteLine(ctx, order.ID, line.ID), model.ErrNotFound)
}

func TestOrderRepository_CloseQueuesNotification(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	pr := repo.NewProductRepository(conn)
	or := repo.NewOrderRepository(conn)
	ob := repo.NewOutboxRepository(conn)

	user := createUser(ctx, t, ur, "close@example.com")
	product, err := pr.Create(ctx, model.Product{ID: uuid.New(), Title: "Superstar", PriceCents: 8000})
	require.NoError(t, err)

	order, err := or.GetOrCreateOpen(ctx, user.ID)
	require.NoError(t, err)
	_, err = or.UpsertLine(ctx, order.ID, product.ID, product.PriceCents)
	require.NoError(t, err)

	eventID := uuid.New()
	payload, err := json.Marshal(model.OrderClosedPayload{OrderID: order.ID, Email: user.Email})
	require.NoError(t, err)

	err = or.Close(ctx, order.ID, model.OutboxEvent{
		EventID: eventID,
		Topic:   model.TopicOrderClosed,
		Payload: payload,
	})
	require.NoError(t, err)

	// Closing twice loses the race.
	err = or.Close(ctx, order.ID, model.OutboxEvent{EventID: uuid.New(), Topic: model.TopicOrderClosed, Payload: payload})
	require.ErrorIs(t, err, model.ErrNotFound)

	// The next cart touch starts a fresh open order.
	fresh, err := or.GetOrCreateOpen(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, order.ID, fresh.ID)

	pending, err := ob.FetchPending(ctx, 100)
	require.NoError(t, err)

	var queued *model.OutboxEvent
	for i := range pending {
		if pending[i].EventID == eventID {
			queued = &pending[i]
			break
		}
	}
	require.NotNil(t, queued)
	require.Equal(t, model.TopicOrderClosed, queued.Topic)

	require.NoError(t, ob.MarkSent(ctx, queued.ID))

	pending, err = ob.FetchPending(ctx, 100)
	require.NoError(t, err)
	for _, event := range pending {
		require.NotEqual(t, eventID, event.EventID)
	}
}

func TestRefreshTokenRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	rt := repo.NewRefreshTokenRepository(conn)

	user := createUser(ctx, t, ur, "tokens@example.com")

	token := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenKey:  uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, rt.Create(ctx, token))

	got, err := rt.GetByKey(ctx, token.TokenKey)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.UserID)

	require.NoError(t, rt.DeleteByKey(ctx, token.TokenKey))

	_, err = rt.GetByKey(ctx, token.TokenKey)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCommentRepository_ListJoinsAuthor(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	cr := repo.NewCommentRepository(conn)

	user := createUser(ctx, t, ur, "reviewer@example.com")

	comment, err := cr.Create(ctx, model.Comment{
		ID:     uuid.New(),
		UserID: user.ID,
		Text:   "Great sneakers!",
	})
	require.NoError(t, err)

	list, err := cr.List(ctx, 0, 50)
	require.NoError(t, err)

	var found bool
	for _, c := range list {
		if c.ID == comment.ID {
			found = true
			require.Equal(t, "Test User", c.AuthorName)
			require.Equal(t, "Great sneakers!", c.Text)
		}
	}
	require.True(t, found)
}
