// Package dashboard serves the analytics views over HTTP as JSON or CSV.
package dashboard

import (
	"net/http"
	"net/url"

	"github.com/kilianp07/evdash/core/analytics"
	"github.com/kilianp07/evdash/pkg/export"
)

// DefaultTop is the number of stations returned by the ranking endpoints.
const DefaultTop = 10

// view computes the response for filtered records. It returns the JSON
// value and the table used for CSV downloads.
type view func(recs []analytics.Record, q url.Values) (any, export.Table, error)

// NewHandler returns the dashboard API mounted on a fresh ServeMux.
func NewHandler(store *Store) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, store.Status())
	})
	mux.HandleFunc("GET /api/options", func(w http.ResponseWriter, _ *http.Request) {
		recs, ok := store.Records()
		if !ok {
			http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, analytics.AvailableOptions(recs))
	})
	mux.Handle("GET /api/kpis", serve(store, "kpis.csv", kpis))
	mux.Handle("GET /api/utilization", serve(store, "utilization.csv", utilization))
	mux.Handle("GET /api/wait-times", serve(store, "wait_times.csv", waitTimes))
	mux.Handle("GET /api/stations/top", serve(store, "top10_stations.csv", topStations))
	mux.Handle("GET /api/revenue-cost", serve(store, "revenue_vs_cost.csv", revenueCost))
	mux.Handle("GET /api/queue-capacity", serve(store, "queue_capacity.csv", queueCapacity))
	return mux
}

func serve(store *Store, filename string, v view) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recs, ok := store.Records()
		if !ok {
			http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		q := r.URL.Query()
		f, err := ParseFilter(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, table, err := v(f.Apply(recs), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch q.Get("format") {
		case "", "json":
			writeJSON(w, body)
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
			if err := export.WriteCSV(w, table); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "format must be json or csv", http.StatusBadRequest)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func kpis(recs []analytics.Record, _ url.Values) (any, export.Table, error) {
	k := analytics.ComputeKPIs(recs)
	return k, analytics.KPITable(k), nil
}

func utilization(recs []analytics.Record, _ url.Values) (any, export.Table, error) {
	u := analytics.Utilization(recs)
	return u, analytics.UtilizationTable(u), nil
}

func waitTimes(recs []analytics.Record, _ url.Values) (any, export.Table, error) {
	d := analytics.DailyWait(recs)
	return d, analytics.DailyWaitTable(d), nil
}

func topStations(recs []analytics.Record, q url.Values) (any, export.Table, error) {
	n, err := positiveInt(q, "n", DefaultTop)
	if err != nil {
		return nil, nil, err
	}
	top := analytics.TopStations(recs, n)
	return top, analytics.TopStationsTable(top), nil
}

func revenueCost(recs []analytics.Record, _ url.Values) (any, export.Table, error) {
	rc := analytics.RevenueVsCost(recs)
	return rc, analytics.RevenueCostTable(rc), nil
}

func queueCapacity(recs []analytics.Record, q url.Values) (any, export.Table, error) {
	top, err := positiveInt(q, "top", DefaultTop)
	if err != nil {
		return nil, nil, err
	}
	rep := analytics.QueueCapacity(recs, top)
	return rep, analytics.QueueRowsTable(recs), nil
}
