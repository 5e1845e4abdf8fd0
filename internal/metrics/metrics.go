// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels shared by every recorder.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Resume management metrics; op is list, get, create, update or delete.
	IncResumeOperation(op, outcome string)

	// Export pipeline metrics
	ObserveExport(outcome string, duration time.Duration)
	ObserveExportSize(bytes int)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// OutcomeOf maps an error to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
