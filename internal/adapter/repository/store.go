// Package repository persists resume records.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"resume-builder/internal/domain"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/pkg/infrastructure"

	"github.com/google/uuid"
)

// Backend names accepted by Open.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Store is the full surface of a resume backend, including lifecycle.
type Store interface {
	List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error)
	Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error)
	Create(ctx context.Context, r *domain.Resume) error
	Update(ctx context.Context, r *domain.Resume) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	// Backend reports which implementation is serving requests.
	Backend() string
	Ping(ctx context.Context) error
	Close()
}

type Options struct {
	Backend          string
	DatabaseURL      string
	MaxConns         int32
	FallbackToMemory bool
}

// Open builds the store named by opts.Backend. When postgres cannot be
// reached the memory store is used if opts.FallbackToMemory is set;
// otherwise a store that fails every call with ErrStorageUnavailable is
// returned so the service can still start and report the outage.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		logger.Info("resume store ready", "backend", BackendMemory)
		return NewMemoryStore(), nil
	case BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}

	pool, err := infrastructure.NewResumePool(ctx, opts.DatabaseURL, opts.MaxConns)
	if err == nil {
		err = migration.RunMigrations(ctx, pool)
		if err != nil {
			pool.Close()
		}
	}
	if err != nil {
		if opts.FallbackToMemory {
			logger.Warn("postgres unavailable, falling back to memory store", "error", err)
			return NewMemoryStore(), nil
		}
		logger.Error("postgres unavailable, resume storage disabled", "error", err)
		return NewUnavailableStore(err), nil
	}

	logger.Info("resume store ready", "backend", BackendPostgres)
	return NewPostgresStore(pool), nil
}
