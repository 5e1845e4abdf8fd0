package usecase

import (
	"context"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/metrics"
	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// ResumeStore persists resumes. Every lookup is scoped by owner: an id that
// belongs to someone else is reported as domain.ErrNotFound.
type ResumeStore interface {
	List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error)
	Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error)
	Create(ctx context.Context, r *domain.Resume) error
	Update(ctx context.Context, r *domain.Resume) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

type ResumeService struct {
	store   ResumeStore
	metrics metrics.Recorder
	now     func() time.Time
}

func NewResumeService(store ResumeStore, rec metrics.Recorder) *ResumeService {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &ResumeService{store: store, metrics: rec, now: func() time.Time { return time.Now().UTC() }}
}

func (s *ResumeService) List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	out, err := s.store.List(ctx, ownerID)
	s.metrics.IncResumeOperation("list", metrics.OutcomeOf(err))
	return out, err
}

func (s *ResumeService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error) {
	r, err := s.store.Get(ctx, id, ownerID)
	s.metrics.IncResumeOperation("get", metrics.OutcomeOf(err))
	return r, err
}

// Create stores a new resume built from the defaults plus every field
// present in p. The id in p, if any, is ignored.
func (s *ResumeService) Create(ctx context.Context, ownerID string, p ResumePatch) (*domain.Resume, error) {
	r := domain.NewResume(ownerID, s.now())
	p.ApplyTo(r)
	err := s.store.Create(ctx, r)
	s.metrics.IncResumeOperation("create", metrics.OutcomeOf(err))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Update merges p into the stored resume and refreshes UpdatedAt. The owner
// and the creation time never change.
func (s *ResumeService) Update(ctx context.Context, id uuid.UUID, ownerID string, p ResumePatch) (*domain.Resume, error) {
	r, err := s.update(ctx, id, ownerID, p)
	s.metrics.IncResumeOperation("update", metrics.OutcomeOf(err))
	return r, err
}

func (s *ResumeService) update(ctx context.Context, id uuid.UUID, ownerID string, p ResumePatch) (*domain.Resume, error) {
	r, err := s.store.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	p.ApplyTo(r)
	r.UpdatedAt = s.now()
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Save creates a resume when p carries no id and updates it otherwise.
func (s *ResumeService) Save(ctx context.Context, ownerID string, p ResumePatch) (*domain.Resume, error) {
	if p.ID == "" {
		return s.Create(ctx, ownerID, p)
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		verr := model.NewValidationError()
		verr.Add("id", "must be a UUID")
		return nil, verr
	}
	return s.Update(ctx, id, ownerID, p)
}

func (s *ResumeService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	err := s.store.Delete(ctx, id, ownerID)
	s.metrics.IncResumeOperation("delete", metrics.OutcomeOf(err))
	return err
}
