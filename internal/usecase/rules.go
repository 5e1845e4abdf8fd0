package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"resume-builder/internal/model"
)

// MinSummaryLength is the shortest summary a full update accepts.
const MinSummaryLength = 50

// ValidateFullUpdate checks the rules of a full-field update on top of the
// schema: the core personal info fields must be present and non-blank and
// the summary must have at least MinSummaryLength characters.
func ValidateFullUpdate(p ResumePatch) error {
	verr := model.NewValidationError()

	var pi PersonalInfoPatch
	if p.PersonalInfo != nil {
		pi = *p.PersonalInfo
	}
	required := []struct {
		field string
		value *string
	}{
		{"personalInfo.fullName", pi.FullName},
		{"personalInfo.email", pi.Email},
		{"personalInfo.phone", pi.Phone},
		{"personalInfo.location", pi.Location},
	}
	for _, r := range required {
		if r.value == nil || strings.TrimSpace(*r.value) == "" {
			verr.Add(r.field, "is required")
		}
	}

	if p.Summary == nil || utf8.RuneCountInString(strings.TrimSpace(*p.Summary)) < MinSummaryLength {
		verr.Add("summary", fmt.Sprintf("must be at least %d characters", MinSummaryLength))
	}

	return verr.OrNil()
}
