package app

import (
	"fmt"
	"io"

	"github.com/kilianp07/evdash/core/analytics"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/pkg/export"
)

// Report table names accepted by WriteReport.
const (
	TableKPIs          = "kpis"
	TableUtilization   = "utilization"
	TableWaitTimes     = "wait-times"
	TableTop           = "top"
	TableRevenueCost   = "revenue-cost"
	TableQueueCapacity = "queue-capacity"
)

// ReportTables lists the accepted table names.
func ReportTables() []string {
	return []string{TableKPIs, TableUtilization, TableWaitTimes, TableTop, TableRevenueCost, TableQueueCapacity}
}

// ReportOptions selects the table, its filter and output format.
type ReportOptions struct {
	Table  string
	Format string
	Top    int
	Filter analytics.Filter
}

// WriteReport computes one analytics table over ds and writes it to w as
// CSV or JSON.
func WriteReport(w io.Writer, ds model.Dataset, opts ReportOptions) error {
	recs, _ := analytics.Join(ds)
	recs = opts.Filter.Apply(recs)
	top := opts.Top
	if top <= 0 {
		top = 10
	}
	var body any
	var table export.Table
	switch opts.Table {
	case TableKPIs:
		k := analytics.ComputeKPIs(recs)
		body, table = k, analytics.KPITable(k)
	case TableUtilization:
		u := analytics.Utilization(recs)
		body, table = u, analytics.UtilizationTable(u)
	case TableWaitTimes:
		d := analytics.DailyWait(recs)
		body, table = d, analytics.DailyWaitTable(d)
	case TableTop:
		t := analytics.TopStations(recs, top)
		body, table = t, analytics.TopStationsTable(t)
	case TableRevenueCost:
		rc := analytics.RevenueVsCost(recs)
		body, table = rc, analytics.RevenueCostTable(rc)
	case TableQueueCapacity:
		q := analytics.QueueCapacity(recs, top)
		body, table = q, analytics.QueueRowsTable(recs)
	default:
		return fmt.Errorf("unknown table %q", opts.Table)
	}
	switch opts.Format {
	case "", "csv":
		return export.WriteCSV(w, table)
	case "json":
		return export.WriteJSON(w, body)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}
