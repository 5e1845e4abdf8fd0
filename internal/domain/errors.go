package domain

import "errors"

// Error categories shared by the store, the use cases and the HTTP adapter.
// Callers wrap them with %w and match with errors.Is.
var (
	// ErrNotFound covers both a missing id and an id owned by another principal.
	ErrNotFound = errors.New("resume not found")
	// ErrStorageUnavailable means the persistence backend is offline or disabled.
	ErrStorageUnavailable = errors.New("resume storage unavailable")
	// ErrRender means the stored content cannot be turned into HTML.
	ErrRender = errors.New("resume render failed")
	// ErrExportFailed covers engine launch, navigation, readiness and PDF failures.
	ErrExportFailed = errors.New("resume export failed")
)
