package domain

import (
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// DefaultTemplate is applied to resumes created without a template.
const DefaultTemplate = "modern"

type Resume struct {
	ID       uuid.UUID `json:"id"`
	OwnerID  string    `json:"ownerId"`
	Title    string    `json:"title"`
	Template string    `json:"template"`
	IsPublic bool      `json:"isPublic"`
	model.Content
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResumeSummary is the list view of a resume; it omits the nested content.
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	IsPublic  bool      `json:"isPublic"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewResume returns an empty resume owned by ownerID with every default
// applied.
func NewResume(ownerID string, now time.Time) *Resume {
	return &Resume{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Template:  DefaultTemplate,
		Content:   model.EmptyContent(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ListSummary returns the list view of r.
func (r *Resume) ListSummary() ResumeSummary {
	s := ResumeSummary{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PersonalInfo != nil {
		s.FullName = r.PersonalInfo.FullName
	}
	return s
}

// Clone returns a deep copy of r.
func (r *Resume) Clone() *Resume {
	out := *r
	out.Content = r.Content.Clone()
	return &out
}
