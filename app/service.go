package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/evdash/config"
	"github.com/kilianp07/evdash/core/generator"
	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/infra/logger"
	"github.com/kilianp07/evdash/infra/metrics"
	"github.com/kilianp07/evdash/infra/mqtt"
	"github.com/kilianp07/evdash/infra/snapshot"
)

// Service wires the generator, snapshot store, metrics and notifications.
type Service struct {
	cfg      *config.Config
	rec      coremetrics.RunRecorder
	pub      mqtt.Publisher
	notifier *mqtt.Notifier
	log      logger.Logger
}

var newNotifier = mqtt.NewNotifier

// New creates a Service from the configuration. The MQTT notifier is only
// connected when notifications are enabled.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	rec, err := coremetrics.NewRunRecorder(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("run recorder: %w", err)
	}
	svc := &Service{cfg: cfg, rec: rec, pub: mqtt.NopPublisher{}, log: logger.New("service")}
	if cfg.Notify.Enabled {
		n, err := newNotifier(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.notifier = n
		svc.pub = n
	}
	return svc, nil
}

// Generate runs the generator, writes both snapshot files and announces
// them. It returns the published manifest.
func (s *Service) Generate(ctx context.Context) (mqtt.Manifest, error) {
	gen, err := generator.New(s.cfg.Generator, s.rec)
	if err != nil {
		return mqtt.Manifest{}, fmt.Errorf("generator: %w", err)
	}
	ds, err := gen.Run(ctx)
	if err != nil {
		return mqtt.Manifest{}, fmt.Errorf("generate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return mqtt.Manifest{}, err
	}

	t0 := time.Now()
	stationsPath, sessionsPath, err := snapshot.NewWriter(s.cfg.Output).Save(ds)
	if err != nil {
		return mqtt.Manifest{}, fmt.Errorf("write snapshot: %w", err)
	}
	s.log.Infof("snapshot written in %s", time.Since(t0))

	run := gen.LastRun()
	m := mqtt.Manifest{
		RunID:               run.RunID,
		Seed:                run.Seed,
		Stations:            len(ds.Stations),
		Sessions:            len(ds.Sessions),
		ExpansionCandidates: run.ExpansionCandidates,
		StationsPath:        stationsPath,
		SessionsPath:        sessionsPath,
		GeneratedAt:         run.Time,
		PhasesMS:            make(map[string]int64, len(run.Phases)),
	}
	for phase, d := range run.Phases {
		m.PhasesMS[phase] = d.Milliseconds()
	}
	if url := s.cfg.Metrics.PushgatewayURL; url != "" {
		if err := metrics.Push(url, metrics.PushJob, nil); err != nil {
			s.log.Errorf("push metrics: %v", err)
		}
	}
	if err := s.pub.PublishManifest(m); err != nil {
		s.log.Errorf("publish manifest: %v", err)
	}
	return m, nil
}

// Load reads the configured snapshot files.
func (s *Service) Load() (model.Dataset, error) {
	return snapshot.Load(s.cfg.Output)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Disconnect()
	}
	return nil
}
