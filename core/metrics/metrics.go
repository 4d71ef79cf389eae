package metrics

import "time"

// RunEvent summarises one generator run.
type RunEvent struct {
	RunID    string
	Seed     uint64
	Stations int
	Sessions int
	// ExpansionCandidates counts stations whose nearest sibling is beyond
	// the expansion threshold.
	ExpansionCandidates int
	// Phases maps a phase name (stations, expansion, sessions, write) to
	// its wall-clock duration.
	Phases map[string]time.Duration
	Time   time.Time
}

// Total returns the sum of all phase durations.
func (e RunEvent) Total() time.Duration {
	var d time.Duration
	for _, p := range e.Phases {
		d += p
	}
	return d
}

// RunRecorder records generator runs for observability purposes.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) RecordRun(RunEvent) error { return nil }

// MultiRecorder fans out events to several recorders.
type MultiRecorder struct {
	Recorders []RunRecorder
}

// NewMultiRecorder creates a MultiRecorder with the provided recorders.
func NewMultiRecorder(recs ...RunRecorder) *MultiRecorder {
	return &MultiRecorder{Recorders: recs}
}

// RecordRun forwards the event to all recorders, returning the first error
// encountered.
func (m *MultiRecorder) RecordRun(ev RunEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}
