package repository

import (
	"context"
	"fmt"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// UnavailableStore stands in for a backend that could not be opened.
type UnavailableStore struct {
	err error
}

func NewUnavailableStore(cause error) *UnavailableStore {
	return &UnavailableStore{err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, cause)}
}

func (s *UnavailableStore) Backend() string { return "unavailable" }

func (s *UnavailableStore) Ping(ctx context.Context) error { return s.err }

func (s *UnavailableStore) Close() {}

func (s *UnavailableStore) List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	return nil, s.err
}

func (s *UnavailableStore) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error) {
	return nil, s.err
}

func (s *UnavailableStore) Create(ctx context.Context, r *domain.Resume) error { return s.err }

func (s *UnavailableStore) Update(ctx context.Context, r *domain.Resume) error { return s.err }

func (s *UnavailableStore) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	return s.err
}
