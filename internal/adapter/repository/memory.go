package repository

import (
	"context"
	"sort"
	"sync"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps resumes in process memory. Values are copied on the way
// in and on the way out, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]*domain.Resume
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{resumes: map[uuid.UUID]*domain.Resume{}}
}

func (s *MemoryStore) Backend() string { return BackendMemory }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() {}

// List returns the owner's resumes, most recently updated first.
func (s *MemoryStore) List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	s.mu.RLock()
	out := make([]domain.ResumeSummary, 0)
	for _, r := range s.resumes {
		if r.OwnerID == ownerID {
			out = append(out, r.ListSummary())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryStore) Create(ctx context.Context, r *domain.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[r.ID] = r.Clone()
	return nil
}

// Update replaces the stored resume. The stored owner and creation time are
// kept whatever r carries.
func (s *MemoryStore) Update(ctx context.Context, r *domain.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.resumes[r.ID]
	if !ok || cur.OwnerID != r.OwnerID {
		return domain.ErrNotFound
	}
	next := r.Clone()
	next.OwnerID = cur.OwnerID
	next.CreatedAt = cur.CreatedAt
	s.resumes[r.ID] = next
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(s.resumes, id)
	return nil
}
