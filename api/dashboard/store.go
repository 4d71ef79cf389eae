package dashboard

import (
	"sync"
	"time"

	"github.com/kilianp07/evdash/core/analytics"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/infra/logger"
)

// Loader reads a dataset, typically from the snapshot files.
type Loader func() (model.Dataset, error)

// Store holds the joined records served by the API. It is safe for
// concurrent use; Reload swaps the whole record set at once.
type Store struct {
	mu       sync.RWMutex
	records  []analytics.Record
	stats    analytics.JoinStats
	loaded   bool
	loadedAt time.Time
	log      logger.Logger
}

// NewStore returns an empty store. Handlers answer 503 until it is loaded.
func NewStore() *Store {
	return &Store{log: logger.New("dashboard-store")}
}

// Set joins ds and replaces the current records.
func (s *Store) Set(ds model.Dataset) analytics.JoinStats {
	recs, stats := analytics.Join(ds)
	s.mu.Lock()
	s.records = recs
	s.stats = stats
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()
	if stats.Orphans > 0 {
		s.log.Warnf("dropped %d sessions referencing unknown stations", stats.Orphans)
	}
	s.log.Infow("dataset loaded", map[string]any{"stations": len(ds.Stations), "records": stats.Matched})
	return stats
}

// Reload calls load and keeps the previous records when it fails.
func (s *Store) Reload(load Loader) error {
	ds, err := load()
	if err != nil {
		s.log.Errorf("reload failed: %v", err)
		return err
	}
	s.Set(ds)
	return nil
}

// Records returns the current records and whether a dataset was loaded.
// The slice must not be modified.
func (s *Store) Records() ([]analytics.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.loaded
}

// Status describes the loaded dataset.
type Status struct {
	Loaded   bool      `json:"loaded"`
	Records  int       `json:"records"`
	Orphans  int       `json:"orphans"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Status returns a snapshot of the store state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{Loaded: s.loaded, Records: len(s.records), Orphans: s.stats.Orphans, LoadedAt: s.loadedAt}
}
