package analytics

import "github.com/kilianp07/evdash/core/model"

// Record is a session enriched with its station attributes. Region is the
// station region; the region copied onto the session is discarded.
type Record struct {
	model.Session
	StationName string
	Lat         float64
	Lon         float64
	ChargerType string
}

// JoinStats reports how many sessions were matched to a station.
type JoinStats struct {
	Matched int
	Orphans int
}

// Join attaches station attributes to every session whose station exists.
// Sessions referencing unknown stations are dropped and counted.
func Join(ds model.Dataset) ([]Record, JoinStats) {
	idx := ds.StationIndex()
	out := make([]Record, 0, len(ds.Sessions))
	var stats JoinStats
	for _, s := range ds.Sessions {
		i, ok := idx[s.StationID]
		if !ok {
			stats.Orphans++
			continue
		}
		st := ds.Stations[i]
		s.Region = st.Region
		out = append(out, Record{
			Session:     s,
			StationName: st.StationName,
			Lat:         st.Lat,
			Lon:         st.Lon,
			ChargerType: st.ChargerType,
		})
	}
	stats.Matched = len(out)
	return out, stats
}
