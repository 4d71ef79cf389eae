package generator

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/kilianp07/evdash/config"
	"github.com/kilianp07/evdash/core/geo"
	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/infra/logger"
)

// ErrNoStations is returned when sessions are requested without stations.
var ErrNoStations = errors.New("no stations to attach sessions to")

// Generator builds stations and sessions from a single seeded source.
type Generator struct {
	cfg       config.GeneratorConfig
	nearest   geo.NearestFunc
	start     time.Time
	hours     int64
	threshold float64

	src  *rand.ChaCha8
	rand *rand.Rand

	rec     coremetrics.RunRecorder
	log     logger.Logger
	lastRun coremetrics.RunEvent
}

// New creates a Generator. A nil recorder disables run metrics.
func New(cfg config.GeneratorConfig, rec coremetrics.RunRecorder) (*Generator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nearest, err := geo.Lookup(cfg.Nearest)
	if err != nil {
		return nil, err
	}
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = coremetrics.NopRecorder{}
	}
	src := newSource(cfg.Seed)
	return &Generator{
		cfg:       cfg,
		nearest:   nearest,
		start:     start,
		hours:     int64(end.Sub(start) / time.Hour),
		threshold: cfg.ExpansionThresholdKm,
		src:       src,
		rand:      rand.New(src),
		rec:       rec,
		log:       logger.New("generator"),
	}, nil
}

func newSource(seed uint64) *rand.ChaCha8 {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return rand.NewChaCha8(key)
}

// Config returns the effective configuration after defaults.
func (g *Generator) Config() config.GeneratorConfig {
	return g.cfg
}

// LastRun returns the event recorded by the most recent Run.
func (g *Generator) LastRun() coremetrics.RunEvent {
	return g.lastRun
}

// uniform draws from [min, max).
func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

func (g *Generator) pick(set []string) string {
	return set[g.rand.IntN(len(set))]
}
