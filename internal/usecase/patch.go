package usecase

import (
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// PersonalInfoPatch carries the personal info fields present in a request.
// A nil field leaves the stored value untouched.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
	Website  *string `json:"website"`
	Headline *string `json:"headline"`
}

// ResumePatch is a partial resume as sent by clients. Scalars and lists are
// replaced when present; personal info is merged field by field.
type ResumePatch struct {
	ID           string              `json:"id,omitempty"`
	Title        *string             `json:"title"`
	Template     *string             `json:"template"`
	IsPublic     *bool               `json:"isPublic"`
	PersonalInfo *PersonalInfoPatch  `json:"personalInfo"`
	Summary      *string             `json:"summary"`
	Experiences  *[]model.Experience `json:"experiences"`
	Education    *[]model.Education  `json:"education"`
	Skills       *[]model.Skill      `json:"skills"`
	Projects     *[]model.Project    `json:"projects"`
}

// ApplyTo merges p into r. It never touches the id, the owner or the
// timestamps.
func (p ResumePatch) ApplyTo(r *domain.Resume) {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Template != nil {
		if t := normalizeTemplate(*p.Template); t != "" {
			r.Template = t
		}
	}
	if p.IsPublic != nil {
		r.IsPublic = *p.IsPublic
	}
	if p.PersonalInfo != nil {
		r.PersonalInfo = MergePersonalInfo(r.PersonalInfo, *p.PersonalInfo)
	}
	if p.Summary != nil {
		r.Summary = *p.Summary
	}
	if p.Experiences != nil {
		r.Experiences = append([]model.Experience{}, (*p.Experiences)...)
	}
	if p.Education != nil {
		r.Education = append([]model.Education{}, (*p.Education)...)
	}
	if p.Skills != nil {
		r.Skills = append([]model.Skill{}, (*p.Skills)...)
	}
	if p.Projects != nil {
		r.Projects = append([]model.Project{}, (*p.Projects)...)
	}
	r.Normalize()
}

// MergePersonalInfo returns a copy of base with every field present in p
// overwritten. A nil base starts from an empty record.
func MergePersonalInfo(base *model.PersonalInfo, p PersonalInfoPatch) *model.PersonalInfo {
	out := model.PersonalInfo{}
	if base != nil {
		out = *base
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&out.FullName, p.FullName)
	set(&out.Email, p.Email)
	set(&out.Phone, p.Phone)
	set(&out.Location, p.Location)
	set(&out.LinkedIn, p.LinkedIn)
	set(&out.Website, p.Website)
	set(&out.Headline, p.Headline)
	return &out
}

func normalizeTemplate(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
