package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	// Tests run from package dir; point to project-root migrations
	MigrationsDir = "file://../../migrations"
	t.Cleanup(func() { MigrationsDir = "file://migrations" })

	dbURL := getTestDBURL()
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Skip("no database available")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		t.Skip("no database available")
	}

	_ = RollbackMigrations(dbURL)
	require.NoError(t, RunMigrations(dbURL))

	ctx := context.Background()

	t.Run("seed loads full menu", func(t *testing.T) {
		require.NoError(t, SeedData(ctx, pool))

		var count int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count))
		assert.Equal(t, len(menuItems), count)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, SeedData(ctx, pool))

		var count int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count))
		assert.Equal(t, len(menuItems), count)
	})

	t.Run("all seeded items are available", func(t *testing.T) {
		var unavailable int
		require.NoError(t, pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM menu_items WHERE NOT available").Scan(&unavailable))
		assert.Zero(t, unavailable)
	})
}
