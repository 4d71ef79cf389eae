package analytics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// StationCount is the number of sessions of one station.
type StationCount struct {
	StationName string `json:"station_name"`
	Sessions    int    `json:"sessions"`
}

// TopStations returns the n busiest stations, most sessions first with
// ties broken by name. n <= 0 returns every station.
func TopStations(records []Record, n int) []StationCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.StationName]++
	}
	out := make([]StationCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, StationCount{StationName: name, Sessions: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions != out[j].Sessions {
			return out[i].Sessions > out[j].Sessions
		}
		return out[i].StationName < out[j].StationName
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// StationMoney holds total revenue and cost of one station.
type StationMoney struct {
	StationName string  `json:"station_name"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
}

// Margin returns revenue minus cost.
func (m StationMoney) Margin() float64 {
	return m.Revenue - m.Cost
}

// RevenueVsCost sums revenue and cost per station name, sorted by name.
func RevenueVsCost(records []Record) []StationMoney {
	revenue := map[string][]float64{}
	cost := map[string][]float64{}
	for _, r := range records {
		revenue[r.StationName] = append(revenue[r.StationName], r.Revenue)
		cost[r.StationName] = append(cost[r.StationName], r.Cost)
	}
	out := make([]StationMoney, 0, len(revenue))
	for name := range revenue {
		out = append(out, StationMoney{
			StationName: name,
			Revenue:     floats.Sum(revenue[name]),
			Cost:        floats.Sum(cost[name]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StationName < out[j].StationName })
	return out
}
