package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/evdash/core/model"
)

const (
	localEventProbability = 0.05
	minDurationMinutes    = 0.5
)

// GenerateSessions draws m sessions against stations. Port count, expansion
// benefit and region are copied from the chosen station. End times are
// truncated to the millisecond precision of the snapshot files.
func (g *Generator) GenerateSessions(m int, stations []model.Station) ([]model.Session, error) {
	if len(stations) == 0 {
		return nil, ErrNoStations
	}
	wait := distuv.Normal{Mu: 5, Sigma: 3, Src: g.src}
	duration := distuv.Normal{Mu: 30, Sigma: 10, Src: g.src}
	nps := distuv.Normal{Mu: 30, Sigma: 15, Src: g.src}
	precip := distuv.Exponential{Rate: 1, Src: g.src}

	sessions := make([]model.Session, 0, m)
	for i := 0; i < m; i++ {
		st := stations[g.rand.IntN(len(stations))]
		start := g.start.Add(time.Duration(g.rand.Int64N(g.hours+1)) * time.Hour)

		w := math.Max(0, wait.Rand())
		mins := math.Max(minDurationMinutes, duration.Rand())
		energy := g.uniform(10, 75)
		satisfaction := clip(nps.Rand(), -100, 100)
		revenue := energy * g.uniform(0.25, 0.35)
		cost := energy * g.uniform(0.05, 0.10)

		ports := float64(st.NumPorts)
		occ := g.uniform(0.5, 1.5) * ports

		traffic := 100 + g.rand.IntN(900)
		temp := g.uniform(-10, 35)
		rain := precip.Rand()
		event := g.rand.Float64() < localEventProbability

		id, err := uuid.NewRandomFromReader(g.src)
		if err != nil {
			return nil, fmt.Errorf("session id: %w", err)
		}

		sessions = append(sessions, model.Session{
			SessionID:        id.String(),
			StationID:        st.StationID,
			StartTime:        start,
			EndTime:          start.Add(time.Duration(mins * float64(time.Minute))).Truncate(time.Millisecond),
			WaitTime:         w,
			EnergyKWh:        energy,
			Revenue:          revenue,
			Cost:             cost,
			SatisfactionNPS:  satisfaction,
			TrafficVolume:    traffic,
			TemperatureC:     temp,
			PrecipMM:         rain,
			LocalEvent:       event,
			NumPorts:         st.NumPorts,
			AvgOccupied:      math.Min(occ, ports),
			QueueLength:      int(math.Max(0, occ-ports)),
			IdleTime:         int(math.Max(0, ports-occ)),
			ExpansionBenefit: st.ExpansionBenefit,
			Region:           st.Region,
		})
	}
	return sessions, nil
}

func clip(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
