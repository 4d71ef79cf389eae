package analytics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxMarkerSize is the size given to the busiest station on the map.
const MaxMarkerSize = 50.0

// StationUtilization summarises one station on the utilization map.
type StationUtilization struct {
	StationID   int64   `json:"station_id"`
	StationName string  `json:"station_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Sessions    int     `json:"sessions"`
	AvgWait     float64 `json:"avg_wait"`
	// Size scales Sessions so the busiest station gets MaxMarkerSize.
	Size float64 `json:"size"`
	// Color is AvgWait min-max normalised to [0, 1], 0 when all are equal.
	Color float64 `json:"color"`
}

// Utilization groups records per station, ordered by station id.
func Utilization(records []Record) []StationUtilization {
	groups := map[int64][]float64{}
	first := map[int64]Record{}
	for _, r := range records {
		if _, ok := first[r.StationID]; !ok {
			first[r.StationID] = r
		}
		groups[r.StationID] = append(groups[r.StationID], r.WaitTime)
	}
	out := make([]StationUtilization, 0, len(groups))
	for id, waits := range groups {
		r := first[id]
		out = append(out, StationUtilization{
			StationID:   id,
			StationName: r.StationName,
			Lat:         r.Lat,
			Lon:         r.Lon,
			Sessions:    len(waits),
			AvgWait:     stat.Mean(waits, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StationID < out[j].StationID })
	if len(out) == 0 {
		return out
	}

	sessions := make([]float64, len(out))
	avg := make([]float64, len(out))
	for i, u := range out {
		sessions[i] = float64(u.Sessions)
		avg[i] = u.AvgWait
	}
	maxSessions := floats.Max(sessions)
	lo, hi := floats.Min(avg), floats.Max(avg)
	for i := range out {
		out[i].Size = sessions[i] / maxSessions * MaxMarkerSize
		if hi > lo {
			out[i].Color = (avg[i] - lo) / (hi - lo)
		}
	}
	return out
}
