package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/migrations"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// setupTestStorage поднимает PostgreSQL в контейнере и применяет миграции проекта.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}

func createVendor(t *testing.T, s *Storage, email string) string {
	t.Helper()
	id, err := s.CreateUser(context.Background(), models.User{
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleVendor,
	})
	require.NoError(t, err)
	return id
}

func TestStorage_Users(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "digest", Role: models.RoleVendor})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	t.Run("get by email", func(t *testing.T) {
		u, err := s.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "digest", u.PasswordHash)
		assert.Equal(t, models.RoleVendor, u.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "other", Role: models.RoleStandard})
		require.ErrorIs(t, err, common.ErrDuplicateEmail)

		var count int
		require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, "a@x.com").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.GetUserByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestStorage_Products(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	owner := createVendor(t, s, "owner@x.com")
	other := createVendor(t, s, "other@x.com")

	created, err := s.CreateProduct(ctx, models.Product{
		Name: "Cart", Description: "hot dogs", Price: 5.0, Stock: 3,
		ImageURL: "/uploads/cart.png", OwnerID: owner,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, owner, created.OwnerID)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("get", func(t *testing.T) {
		p, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cart", p.Name)

		_, err = s.GetProduct(ctx, created.ID+1000)
		require.ErrorIs(t, err, common.ErrProductNotFound)
	})

	t.Run("list by owner excludes other vendors", func(t *testing.T) {
		own, err := s.ListProductsByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, own, 1)

		foreign, err := s.ListProductsByOwner(ctx, other)
		require.NoError(t, err)
		assert.Empty(t, foreign)

		all, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update keeps image when none given", func(t *testing.T) {
		n, err := s.UpdateProduct(ctx, models.Product{
			ID: created.ID, OwnerID: owner, Name: "Cart 2", Description: "d", Price: 6, Stock: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		p, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cart 2", p.Name)
		assert.Equal(t, "/uploads/cart.png", p.ImageURL)
	})

	t.Run("update replaces image", func(t *testing.T) {
		_, err := s.UpdateProduct(ctx, models.Product{
			ID: created.ID, OwnerID: owner, Name: "Cart 2", Description: "d", Price: 6, Stock: 1,
			ImageURL: "/uploads/new.png",
		})
		require.NoError(t, err)

		p, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/new.png", p.ImageURL)
	})

	t.Run("foreign owner cannot update or delete", func(t *testing.T) {
		n, err := s.UpdateProduct(ctx, models.Product{ID: created.ID, OwnerID: other, Name: "x", Description: "y"})
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = s.DeleteProduct(ctx, created.ID, other)
		require.NoError(t, err)
		assert.Zero(t, n)

		p, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cart 2", p.Name)
	})

	t.Run("negative price rejected by schema", func(t *testing.T) {
		_, err := s.CreateProduct(ctx, models.Product{Name: "n", Description: "d", Price: -1, OwnerID: owner})
		require.ErrorIs(t, err, common.ErrPersistence)
	})

	t.Run("delete", func(t *testing.T) {
		n, err := s.DeleteProduct(ctx, created.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = s.GetProduct(ctx, created.ID)
		require.ErrorIs(t, err, common.ErrProductNotFound)
	})
}

func TestStorage_CanceledContext(t *testing.T) {
	s := &Storage{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateUser(ctx, models.User{})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.GetProduct(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.ListProducts(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.DeleteProduct(ctx, 1, "owner")
	require.ErrorIs(t, err, context.Canceled)
}
