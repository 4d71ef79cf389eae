package analytics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// RollingWindow is the width in days of the centred wait-time average.
const RollingWindow = 7

// AnomalySigmas is how many standard deviations above the mean a daily
// wait must be to count as an anomaly.
const AnomalySigmas = 2.0

// DayWait is one calendar day of the wait-time series. AvgWait and Rolling
// are nil for days without a value.
type DayWait struct {
	Date       time.Time `json:"date"`
	AvgWait    *float64  `json:"avg_wait"`
	Sessions   int       `json:"sessions"`
	LocalEvent bool      `json:"local_event"`
	Rolling    *float64  `json:"rolling_avg"`
	Anomaly    bool      `json:"anomaly"`
}

// DailyWait builds a continuous daily series from the first to the last
// start day in records.
func DailyWait(records []Record) []DayWait {
	if len(records) == 0 {
		return []DayWait{}
	}
	opts := AvailableOptions(records)
	days := int(opts.MaxDate.Sub(opts.MinDate)/(24*time.Hour)) + 1
	sums := make([]float64, days)
	out := make([]DayWait, days)
	for i := range out {
		out[i].Date = opts.MinDate.AddDate(0, 0, i)
	}
	for _, r := range records {
		i := int(Day(r.StartTime).Sub(opts.MinDate) / (24 * time.Hour))
		sums[i] += r.WaitTime
		out[i].Sessions++
		out[i].LocalEvent = out[i].LocalEvent || r.LocalEvent
	}

	var present []float64
	for i := range out {
		if out[i].Sessions > 0 {
			v := sums[i] / float64(out[i].Sessions)
			out[i].AvgWait = &v
			present = append(present, v)
		}
	}

	half := RollingWindow / 2
	for i := half; i+half < days; i++ {
		window := make([]float64, 0, RollingWindow)
		for j := i - half; j <= i+half; j++ {
			if out[j].AvgWait == nil {
				break
			}
			window = append(window, *out[j].AvgWait)
		}
		if len(window) == RollingWindow {
			v := stat.Mean(window, nil)
			out[i].Rolling = &v
		}
	}

	if len(present) > 1 {
		mu, sigma := stat.MeanStdDev(present, nil)
		limit := mu + AnomalySigmas*sigma
		for i := range out {
			if out[i].AvgWait != nil && *out[i].AvgWait > limit {
				out[i].Anomaly = true
			}
		}
	}
	return out
}
