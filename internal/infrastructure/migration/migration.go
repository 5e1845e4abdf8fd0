package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations returns the schema steps in the order they are applied. Every
// step is idempotent.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_resumes_table", Up: execStep(createResumesTable)},
		{Name: "add_resumes_owner_updated_index", Up: execStep(addOwnerUpdatedIndex)},
		{Name: "add_resumes_content_check", Up: addContentCheck},
	}
}

const createResumesTable = `
	CREATE TABLE IF NOT EXISTS resumes (
		id          UUID PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		title       TEXT NOT NULL DEFAULT '',
		template    TEXT NOT NULL DEFAULT 'modern',
		is_public   BOOLEAN NOT NULL DEFAULT FALSE,
		content     JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

const addOwnerUpdatedIndex = `
	CREATE INDEX IF NOT EXISTS idx_resumes_owner_updated
	ON resumes (owner_id, updated_at DESC);
`

func execStep(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}

// addContentCheck rejects non-object content documents. Postgres has no
// ADD CONSTRAINT IF NOT EXISTS, so an existing constraint is tolerated.
func addContentCheck(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		ALTER TABLE resumes
		ADD CONSTRAINT resumes_content_is_object CHECK (jsonb_typeof(content) = 'object');
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		// Log the error but don't fail - the constraint may already exist
		slog.Warn("Error adding content check (may already exist)", "error", err)
		return nil
	}

	slog.Info("Successfully added content check to resumes table")
	return nil
}
