package analytics

import (
	"strconv"

	"github.com/kilianp07/evdash/pkg/export"
)

// Tables implementing export.Table. Column names follow the dashboard
// CSV downloads.

// KPITable renders KPIs as a single row.
type KPITable KPIs

func (t KPITable) Header() []string {
	return []string{"sessions", "avg_wait", "total_revenue", "avg_nps"}
}

func (t KPITable) Rows() [][]string {
	return [][]string{{export.Int(t.Sessions), export.Float(t.AvgWait), export.Float(t.TotalRevenue), export.Float(t.AvgNPS)}}
}

// UtilizationTable renders the utilization map data.
type UtilizationTable []StationUtilization

func (t UtilizationTable) Header() []string {
	return []string{"station_id", "station_name", "lat", "lon", "sessions", "avg_wait", "size", "color"}
}

func (t UtilizationTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, u := range t {
		rows[i] = []string{
			strconv.FormatInt(u.StationID, 10), u.StationName,
			export.Float(u.Lat), export.Float(u.Lon),
			export.Int(u.Sessions), export.Float(u.AvgWait),
			export.Float(u.Size), export.Float(u.Color),
		}
	}
	return rows
}

// DailyWaitTable renders the wait-time series.
type DailyWaitTable []DayWait

func (t DailyWaitTable) Header() []string {
	return []string{"start_time", "wait_time", "sessions", "event_occurred", "roll7", "anomaly"}
}

func (t DailyWaitTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, d := range t {
		rows[i] = []string{
			export.Date(d.Date), export.OptFloat(d.AvgWait), export.Int(d.Sessions),
			export.Bool(d.LocalEvent), export.OptFloat(d.Rolling), export.Bool(d.Anomaly),
		}
	}
	return rows
}

// TopStationsTable renders the busiest stations.
type TopStationsTable []StationCount

func (t TopStationsTable) Header() []string { return []string{"station_name", "sessions"} }

func (t TopStationsTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, c := range t {
		rows[i] = []string{c.StationName, export.Int(c.Sessions)}
	}
	return rows
}

// RevenueCostTable renders revenue and cost per station.
type RevenueCostTable []StationMoney

func (t RevenueCostTable) Header() []string { return []string{"station_name", "revenue", "cost"} }

func (t RevenueCostTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, m := range t {
		rows[i] = []string{m.StationName, export.Float(m.Revenue), export.Float(m.Cost)}
	}
	return rows
}

// QueueRowsTable lists the queue length and idle ports of every session,
// the raw data behind the queue capacity report.
type QueueRowsTable []Record

func (t QueueRowsTable) Header() []string {
	return []string{"station_name", "queue_length", "idle_time"}
}

func (t QueueRowsTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = []string{r.StationName, export.Int(r.QueueLength), export.Int(r.IdleTime)}
	}
	return rows
}
