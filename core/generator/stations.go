package generator

import (
	"fmt"

	"github.com/kilianp07/evdash/core/model"
)

// GenerateStations creates n stations with ids 1..n.
func (g *Generator) GenerateStations(n int) []model.Station {
	stations := make([]model.Station, 0, n)
	for i := 1; i <= n; i++ {
		id := int64(i)
		stations = append(stations, model.Station{
			StationID:   id,
			StationName: model.StationName(id),
			Lat:         g.uniform(-90, 90),
			Lon:         g.uniform(-180, 180),
			Region:      g.pick(model.Regions),
			ChargerType: g.pick(model.ChargerTypes),
			NumPorts:    model.MinPorts + g.rand.IntN(model.MaxPorts-model.MinPorts+1),
		})
	}
	return stations
}

// ApplyExpansion fills NearestDistKm and ExpansionBenefit in place. Only
// stations farther than the threshold from every other station get a
// non-zero benefit.
func (g *Generator) ApplyExpansion(stations []model.Station) error {
	dists, err := g.nearest(model.Locations(stations))
	if err != nil {
		return fmt.Errorf("nearest distances: %w", err)
	}
	for i := range stations {
		stations[i].NearestDistKm = dists[i]
		if dists[i] > g.threshold {
			stations[i].ExpansionBenefit = g.uniform(0.1, 0.3)
		} else {
			stations[i].ExpansionBenefit = 0
		}
	}
	return nil
}

// ExpansionCandidates counts stations whose nearest sibling lies beyond
// threshold km.
func ExpansionCandidates(stations []model.Station, threshold float64) int {
	n := 0
	for _, s := range stations {
		if s.NearestDistKm > threshold {
			n++
		}
	}
	return n
}
