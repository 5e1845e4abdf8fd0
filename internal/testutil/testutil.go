package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"resume-builder/internal/infrastructure/migration"
	"resume-builder/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// PostgresPool connects to DATABASE_URL, applies the migrations and closes
// the pool when the test ends. The test is skipped when DATABASE_URL is
// not set.
func PostgresPool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := RequireEnv(t, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infrastructure.NewResumePool(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migration.RunMigrations(ctx, pool); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return pool
}

// TestOwner returns an owner id unique to the running test, so tests sharing
// a database never see each other's rows.
func TestOwner(t testing.TB) string {
	t.Helper()
	return t.Name() + "-" + time.Now().UTC().Format("150405.000000000")
}
