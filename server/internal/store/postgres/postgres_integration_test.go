package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kachalmers/tuiter/server/internal/store"
	"github.com/kachalmers/tuiter/server/internal/store/storetest"
)

// postgresDSN returns TUITER_POSTGRES_DSN, or starts a throwaway container.
// The test is skipped when neither is available.
func postgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TUITER_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skip("short mode: skipping postgres container")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "tuiter",
			"POSTGRES_PASSWORD": "tuiter",
			"POSTGRES_DB":       "tuiter",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable (is Docker running?): %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://tuiter:tuiter@%s:%s/tuiter?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Compliance(t *testing.T) {
	dsn := postgresDSN(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		db, err := Open(ctx, dsn)
		if err != nil {
			t.Fatalf("postgres open: %v", err)
		}
		s, err := NewWithDB(ctx, db)
		if err != nil {
			t.Fatalf("postgres schema: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
