package capability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer starts a Postgres container for testing and returns
// its connection string.
func setupPostgresContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	require.NoError(t, waitForPostgresReady(ctx, connStr, 30*time.Second))
	return connStr
}

// waitForPostgresReady attempts to connect until Postgres accepts queries or
// the timeout expires. The container log line alone is not enough; Postgres
// restarts once during initdb.
func waitForPostgresReady(ctx context.Context, connStr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for postgres after %s: %w", timeout, lastErr)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, setupPostgresContainer(ctx, t))
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Load(ctx, "svc-a")
	require.NoError(t, err)
	assert.False(t, found)

	p := Profile{
		MaxVectorDimensions:     1536,
		SemanticSearchSupported: true,
		CustomAnalyzers:         []string{"keyword_lowercase"},
		APIVersion:              "2024-07-01",
		DetectedAt:              time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, "svc-a", p))

	got, found, err := store.Load(ctx, "svc-a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, p, got)

	// Save replaces the row wholesale.
	p.MaxVectorDimensions = 3072
	p.SemanticSearchSupported = false
	require.NoError(t, store.Save(ctx, "svc-a", p))

	got, found, err = store.Load(ctx, "svc-a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3072, got.MaxVectorDimensions)
	assert.False(t, got.SemanticSearchSupported)

	// Keys are independent rows.
	_, found, err = store.Load(ctx, "svc-b")
	require.NoError(t, err)
	assert.False(t, found)
}
