package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	// Operations is keyed by "op/outcome", e.g. "create/success".
	Operations       map[string]uint64
	ExportsSucceeded uint64
	ExportsFailed    uint64
	ExportBytes      uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{snap: Snapshot{Operations: map[string]uint64{}}}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.snap
	out.Operations = make(map[string]uint64, len(m.snap.Operations))
	for k, v := range m.snap.Operations {
		out.Operations[k] = v
	}
	return out
}

// IncResumeOperation increments the counter for op and outcome.
func (m *InMemoryRecorder) IncResumeOperation(op, outcome string) {
	m.mu.Lock()
	m.snap.Operations[op+"/"+outcome]++
	m.mu.Unlock()
}

// ObserveExport counts an export attempt by outcome.
func (m *InMemoryRecorder) ObserveExport(outcome string, duration time.Duration) {
	m.mu.Lock()
	if outcome == OutcomeSuccess {
		m.snap.ExportsSucceeded++
	} else {
		m.snap.ExportsFailed++
	}
	m.mu.Unlock()
}

// ObserveExportSize adds the size of a produced PDF.
func (m *InMemoryRecorder) ObserveExportSize(bytes int) {
	m.mu.Lock()
	m.snap.ExportBytes += uint64(bytes)
	m.mu.Unlock()
}
