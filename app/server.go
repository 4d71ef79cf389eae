package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kilianp07/evdash/api/dashboard"
	"github.com/kilianp07/evdash/config"
	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/infra/metrics"
	"github.com/kilianp07/evdash/infra/mqtt"
	"github.com/kilianp07/evdash/infra/snapshot"
)

// Handler returns the dashboard API plus /metrics backed by store.
func Handler(store *dashboard.Store) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", dashboard.NewHandler(store))
	return mux
}

// manifestLoader reads the files named in m, falling back to the
// configured locations for empty paths.
func manifestLoader(out config.OutputConfig, m mqtt.Manifest) dashboard.Loader {
	return func() (model.Dataset, error) {
		stationsPath, sessionsPath := out.StationsPath(), out.SessionsPath()
		if m.StationsPath != "" {
			stationsPath = m.StationsPath
		}
		if m.SessionsPath != "" {
			sessionsPath = m.SessionsPath
		}
		stations, err := snapshot.ReadStations(stationsPath)
		if err != nil {
			return model.Dataset{}, err
		}
		sessions, err := snapshot.ReadSessions(sessionsPath)
		if err != nil {
			return model.Dataset{}, err
		}
		return model.Dataset{Stations: stations, Sessions: sessions}, nil
	}
}

// runEvent rebuilds the generator run described by m.
func runEvent(m mqtt.Manifest) coremetrics.RunEvent {
	ev := coremetrics.RunEvent{
		RunID:               m.RunID,
		Seed:                m.Seed,
		Stations:            m.Stations,
		Sessions:            m.Sessions,
		ExpansionCandidates: m.ExpansionCandidates,
		Phases:              make(map[string]time.Duration, len(m.PhasesMS)),
		Time:                m.GeneratedAt,
	}
	for phase, ms := range m.PhasesMS {
		ev.Phases[phase] = time.Duration(ms) * time.Millisecond
	}
	return ev
}

// onManifest reloads store from the announced files and records the run,
// so the serving process exposes the generator metrics on /metrics.
func (s *Service) onManifest(store *dashboard.Store) func(mqtt.Manifest) {
	return func(m mqtt.Manifest) {
		s.log.Infof("manifest %s received, reloading", m.RunID)
		if err := store.Reload(manifestLoader(s.cfg.Output, m)); err != nil {
			return
		}
		if err := s.rec.RecordRun(runEvent(m)); err != nil {
			s.log.Warnf("record run %s: %v", m.RunID, err)
		}
	}
}

// Serve loads the snapshot and serves the dashboard API until ctx is
// canceled. A missing snapshot is logged and the API answers 503 until a
// manifest triggers a reload.
func (s *Service) Serve(ctx context.Context) error {
	store := dashboard.NewStore()
	if err := store.Reload(s.Load); err != nil {
		s.log.Warnf("no snapshot loaded yet: %v", err)
	}
	if s.notifier != nil {
		if err := s.notifier.Subscribe(s.onManifest(store)); err != nil {
			return err
		}
	}
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" && addr != s.cfg.Server.Addr {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: Handler(store), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("dashboard shutdown: %v", err)
		}
	}()
	s.log.Infof("dashboard listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
