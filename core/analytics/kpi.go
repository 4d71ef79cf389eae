package analytics

import "gonum.org/v1/gonum/stat"

// KPIs are the headline numbers of the dashboard.
type KPIs struct {
	Sessions     int     `json:"sessions"`
	AvgWait      float64 `json:"avg_wait"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgNPS       float64 `json:"avg_nps"`
}

// ComputeKPIs counts distinct sessions and averages wait and satisfaction.
// Means are 0 when records is empty.
func ComputeKPIs(records []Record) KPIs {
	if len(records) == 0 {
		return KPIs{}
	}
	ids := make(map[string]struct{}, len(records))
	waits := make([]float64, len(records))
	nps := make([]float64, len(records))
	var k KPIs
	for i, r := range records {
		ids[r.SessionID] = struct{}{}
		waits[i] = r.WaitTime
		nps[i] = r.SatisfactionNPS
		k.TotalRevenue += r.Revenue
	}
	k.Sessions = len(ids)
	k.AvgWait = stat.Mean(waits, nil)
	k.AvgNPS = stat.Mean(nps, nil)
	return k
}
