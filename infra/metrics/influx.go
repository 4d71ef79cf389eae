package metrics

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/infra/logger"
)

// InfluxRecorder writes generator runs to an InfluxDB instance using the
// official client.
type InfluxRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxRecorder creates a recorder configured for the given endpoint.
func NewInfluxRecorder(url, token, org, bucket string) *InfluxRecorder {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-recorder"),
	}
}

// NewInfluxRecorderWithFallback pings the InfluxDB instance and returns a
// NopRecorder if the health check fails.
func NewInfluxRecorderWithFallback(url, token, org, bucket string) coremetrics.RunRecorder {
	rec := NewInfluxRecorder(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := rec.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			rec.log.Errorf("influx health check error: %v", err)
		} else {
			rec.log.Errorf("influx health status: %s", health.Status)
		}
		rec.client.Close()
		return coremetrics.NopRecorder{}
	}
	return rec
}

// RecordRun writes one generator_run point.
func (r *InfluxRecorder) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.writeAPI.WritePoint(ctx, runPoint(ev))
}

// Close releases the underlying client.
func (r *InfluxRecorder) Close() {
	r.client.Close()
}

func runPoint(ev coremetrics.RunEvent) *write.Point {
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("generator_run").
		AddTag("run_id", ev.RunID).
		AddTag("seed", strconv.FormatUint(ev.Seed, 10)).
		AddField("stations", ev.Stations).
		AddField("sessions", ev.Sessions).
		AddField("expansion_candidates", ev.ExpansionCandidates).
		AddField("total_ms", ev.Total().Milliseconds())
	phases := make([]string, 0, len(ev.Phases))
	for name := range ev.Phases {
		phases = append(phases, name)
	}
	sort.Strings(phases)
	for _, name := range phases {
		p = p.AddField(name+"_ms", ev.Phases[name].Milliseconds())
	}
	return p.SetTime(ts)
}
