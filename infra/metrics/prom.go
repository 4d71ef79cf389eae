package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/evdash/core/metrics"
)

// PromRecorder exposes generator runs as Prometheus metrics.
type PromRecorder struct {
	runs       prometheus.Counter
	stations   prometheus.Gauge
	sessions   prometheus.Gauge
	candidates prometheus.Gauge
	lastRun    prometheus.Gauge
	phases     *prometheus.HistogramVec
}

// NewPromRecorder registers generator metrics on the default registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromRecorder() (coremetrics.RunRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PromRecorder{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evdash_generator_runs_total",
			Help: "Completed generator runs",
		}),
		stations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evdash_generator_stations",
			Help: "Stations produced by the last run",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evdash_generator_sessions",
			Help: "Sessions produced by the last run",
		}),
		candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evdash_generator_expansion_candidates",
			Help: "Stations flagged for expansion by the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evdash_generator_last_run_timestamp_seconds",
			Help: "Completion time of the last run",
		}),
		phases: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evdash_generator_phase_seconds",
			Help:    "Duration of each generator phase",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
	}

	var err error
	if r.runs, err = register(reg, r.runs); err != nil {
		return nil, err
	}
	if r.stations, err = register(reg, r.stations); err != nil {
		return nil, err
	}
	if r.sessions, err = register(reg, r.sessions); err != nil {
		return nil, err
	}
	if r.candidates, err = register(reg, r.candidates); err != nil {
		return nil, err
	}
	if r.lastRun, err = register(reg, r.lastRun); err != nil {
		return nil, err
	}
	if r.phases, err = register(reg, r.phases); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, reusing an identical collector that is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates counters, gauges and phase histograms.
func (r *PromRecorder) RecordRun(ev coremetrics.RunEvent) error {
	r.runs.Inc()
	r.stations.Set(float64(ev.Stations))
	r.sessions.Set(float64(ev.Sessions))
	r.candidates.Set(float64(ev.ExpansionCandidates))
	if !ev.Time.IsZero() {
		r.lastRun.Set(float64(ev.Time.Unix()))
	}
	for phase, d := range ev.Phases {
		r.phases.WithLabelValues(phase).Observe(d.Seconds())
	}
	return nil
}
