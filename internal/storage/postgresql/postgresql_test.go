package postgresql

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
}

func TestStorage_Migrate(t *testing.T) {
	ctx := context.Background()

	storage, err := New(ctx, startPostgres(t))
	require.NoError(t, err)
	defer storage.Stop()

	require.NoError(t, storage.HealthCheck(ctx))

	t.Run("schema is applied", func(t *testing.T) {
		require.NoError(t, storage.Migrate(ctx))

		for _, table := range []string{ExhibitionsTable, RoomsTable, PostsTable, GalleryItemsTable, MainPageTable, AdminUsersTable} {
			var exists bool
			err := storage.db.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table,
			).Scan(&exists)
			require.NoError(t, err)
			require.True(t, exists, table)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, storage.Migrate(ctx))
	})
}
