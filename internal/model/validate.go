package model

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func resumeSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	})
	return schema, schemaErr
}

// ValidationError carries one message per offending field, keyed by the
// dotted JSON path of the field (for example "experiences.0.company").
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when no field was rejected, so callers can return it
// directly as an error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateDocument validates a raw JSON payload against resume.schema.json.
// Schema violations are reported as a *ValidationError; malformed JSON is
// reported under the "body" field.
func ValidateDocument(raw []byte) error {
	s, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}

	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		verr := NewValidationError()
		verr.Add("body", "request body must be a JSON object")
		return verr
	}
	if res.Valid() {
		return nil
	}

	verr := NewValidationError()
	for _, e := range res.Errors() {
		verr.Add(fieldName(e), e.Description())
	}
	return verr.OrNil()
}

// fieldName maps a schema error to the dotted path of the field it concerns.
// Required-property errors are reported against the parent object, so the
// missing property is appended.
func fieldName(e gojsonschema.ResultError) string {
	field := e.Field()
	if field == gojsonschema.STRING_CONTEXT_ROOT {
		field = ""
	}
	if e.Type() == "required" {
		if prop, ok := e.Details()["property"].(string); ok && prop != "" {
			if field == prop || strings.HasSuffix(field, "."+prop) {
				return field
			}
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return "body"
	}
	return field
}
