package analytics

import (
	"math"
	"sort"
)

const (
	// QueueReference marks a congested station: more than 3 cars queued.
	QueueReference = 3
	// IdleReference marks an under-used station: at least 1 idle port.
	IdleReference = 1
)

// BoxStats are the five numbers of a box plot.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Box computes box statistics of values. Quartiles interpolate linearly
// between the closest ranks, so the median of an even-sized sample is the
// mean of the two middle values. values is sorted in place. An empty slice
// yields zero stats.
func Box(values []float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{}
	}
	sort.Float64s(values)
	q := func(p float64) float64 { return quantile(p, values) }
	return BoxStats{
		Min:    values[0],
		Q1:     q(0.25),
		Median: q(0.5),
		Q3:     q(0.75),
		Max:    values[len(values)-1],
	}
}

// quantile returns the p-quantile of sorted at rank (n-1)p, interpolating
// between neighbours. gonum's stat.LinInterp uses rank np instead.
func quantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// StationQueue is the queue and idle distribution of one station.
type StationQueue struct {
	StationName string   `json:"station_name"`
	Sessions    int      `json:"sessions"`
	Queue       BoxStats `json:"queue_length"`
	Idle        BoxStats `json:"idle_time"`
	// Top is set for the stations with the highest median queue.
	Top bool `json:"top"`
}

// QueueCapacityReport orders stations by median queue length.
type QueueCapacityReport struct {
	Stations       []StationQueue `json:"stations"`
	QueueReference int            `json:"queue_reference"`
	IdleReference  int            `json:"idle_reference"`
}

// QueueCapacity builds box statistics per station ordered by median queue
// length descending, ties by name, and flags the first top stations.
func QueueCapacity(records []Record, top int) QueueCapacityReport {
	queue := map[string][]float64{}
	idle := map[string][]float64{}
	for _, r := range records {
		queue[r.StationName] = append(queue[r.StationName], float64(r.QueueLength))
		idle[r.StationName] = append(idle[r.StationName], float64(r.IdleTime))
	}
	out := make([]StationQueue, 0, len(queue))
	for name, q := range queue {
		out = append(out, StationQueue{
			StationName: name,
			Sessions:    len(q),
			Queue:       Box(q),
			Idle:        Box(idle[name]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Queue.Median != out[j].Queue.Median {
			return out[i].Queue.Median > out[j].Queue.Median
		}
		return out[i].StationName < out[j].StationName
	})
	for i := range out {
		out[i].Top = i < top
	}
	return QueueCapacityReport{Stations: out, QueueReference: QueueReference, IdleReference: IdleReference}
}
