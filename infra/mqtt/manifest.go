package mqtt

import "time"

// Manifest announces a freshly written dataset snapshot.
type Manifest struct {
	RunID               string    `json:"run_id"`
	Seed                uint64    `json:"seed"`
	Stations            int       `json:"stations"`
	Sessions            int       `json:"sessions"`
	ExpansionCandidates int       `json:"expansion_candidates"`
	StationsPath        string    `json:"stations_path"`
	SessionsPath        string    `json:"sessions_path"`
	GeneratedAt         time.Time `json:"generated_at"`
	// PhasesMS holds the duration of each generator phase in milliseconds.
	PhasesMS map[string]int64 `json:"phases_ms,omitempty"`
}

// Publisher announces manifests.
type Publisher interface {
	PublishManifest(m Manifest) error
}

// NopPublisher drops every manifest. Used when notifications are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishManifest(Manifest) error { return nil }
