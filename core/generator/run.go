package generator

import (
	"context"
	"time"

	"github.com/google/uuid"

	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/core/model"
)

// Phase names reported in RunEvent.Phases.
const (
	PhaseStations  = "stations"
	PhaseExpansion = "expansion"
	PhaseSessions  = "sessions"
)

// Run generates stations, applies the expansion metric and generates
// sessions. The context is checked between phases only.
func (g *Generator) Run(ctx context.Context) (model.Dataset, error) {
	ev := coremetrics.RunEvent{
		RunID:  uuid.NewString(),
		Seed:   g.cfg.Seed,
		Phases: make(map[string]time.Duration, 3),
	}

	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	t0 := time.Now()
	stations := g.GenerateStations(g.cfg.Stations)
	ev.Phases[PhaseStations] = time.Since(t0)
	g.log.Infow("stations generated", map[string]any{"count": len(stations), "run_id": ev.RunID})

	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	t0 = time.Now()
	if err := g.ApplyExpansion(stations); err != nil {
		return model.Dataset{}, err
	}
	ev.Phases[PhaseExpansion] = time.Since(t0)
	ev.ExpansionCandidates = ExpansionCandidates(stations, g.threshold)
	g.log.Infow("expansion metric applied", map[string]any{
		"candidates":   ev.ExpansionCandidates,
		"threshold_km": g.threshold,
		"strategy":     g.cfg.Nearest,
	})

	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	t0 = time.Now()
	sessions, err := g.GenerateSessions(g.cfg.Sessions, stations)
	if err != nil {
		return model.Dataset{}, err
	}
	ev.Phases[PhaseSessions] = time.Since(t0)
	g.log.Infow("sessions generated", map[string]any{"count": len(sessions)})

	ev.Stations = len(stations)
	ev.Sessions = len(sessions)
	ev.Time = time.Now()
	g.lastRun = ev
	if err := g.rec.RecordRun(ev); err != nil {
		g.log.Warnf("record run: %v", err)
	}
	return model.Dataset{Stations: stations, Sessions: sessions}, nil
}
