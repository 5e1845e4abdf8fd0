package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncResumeOperation is a no-op.
func (n *NoopRecorder) IncResumeOperation(op, outcome string) {}

// ObserveExport is a no-op.
func (n *NoopRecorder) ObserveExport(outcome string, duration time.Duration) {}

// ObserveExportSize is a no-op.
func (n *NoopRecorder) ObserveExportSize(bytes int) {}
