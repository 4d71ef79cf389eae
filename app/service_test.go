package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evdash/api/dashboard"
	"github.com/kilianp07/evdash/config"
	"github.com/kilianp07/evdash/core/analytics"
	"github.com/kilianp07/evdash/core/generator"
	coremetrics "github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/core/model"
	"github.com/kilianp07/evdash/infra/metrics"
	"github.com/kilianp07/evdash/infra/mqtt"
)

type recPublisher struct {
	manifests []mqtt.Manifest
	err       error
}

func (p *recPublisher) PublishManifest(m mqtt.Manifest) error {
	p.manifests = append(p.manifests, m)
	return p.err
}

type recRecorder struct{ events []coremetrics.RunEvent }

func (r *recRecorder) RecordRun(ev coremetrics.RunEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Generator.Stations = 6
	cfg.Generator.Sessions = 120
	cfg.Output.Dir = filepath.Join(t.TempDir(), "data")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestGenerateWritesAndAnnounces(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()
	pub := &recPublisher{}
	svc.pub = pub

	m, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, m.Stations)
	assert.Equal(t, 120, m.Sessions)
	assert.Equal(t, cfg.Output.StationsPath(), m.StationsPath)
	assert.Equal(t, cfg.Output.SessionsPath(), m.SessionsPath)
	assert.NotEmpty(t, m.RunID)
	require.Len(t, pub.manifests, 1)
	assert.Equal(t, m, pub.manifests[0])

	ds, err := svc.Load()
	require.NoError(t, err)
	assert.Len(t, ds.Stations, 6)
	assert.Len(t, ds.Sessions, 120)
	_, stats := analytics.Join(ds)
	assert.Zero(t, stats.Orphans)
}

func TestGeneratePushesMetrics(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Metrics.PushgatewayURL = srv.URL
	svc, err := New(cfg)
	require.NoError(t, err)
	m, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/metrics/job/" + metrics.PushJob}, paths)
	assert.Contains(t, m.PhasesMS, generator.PhaseSessions)
}

func TestOnManifestReloadsAndRecords(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	m, err := svc.Generate(context.Background())
	require.NoError(t, err)

	sink := &recRecorder{}
	svc.rec = sink
	store := dashboard.NewStore()
	svc.onManifest(store)(m)
	st := store.Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, 120, st.Records)
	require.Len(t, sink.events, 1)
	assert.Equal(t, m.RunID, sink.events[0].RunID)
	assert.Equal(t, 6, sink.events[0].Stations)
	assert.Contains(t, sink.events[0].Phases, generator.PhaseExpansion)

	svc.onManifest(store)(mqtt.Manifest{RunID: "missing", StationsPath: filepath.Join(t.TempDir(), "none.parquet")})
	assert.Len(t, sink.events, 1)
}

func TestOnManifestFeedsPrometheus(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	m, err := svc.Generate(context.Background())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPromRecorderWithRegistry(reg)
	require.NoError(t, err)
	svc.rec = rec
	svc.onManifest(dashboard.NewStore())(m)

	expected := `
# HELP evdash_generator_sessions Sessions produced by the last run
# TYPE evdash_generator_sessions gauge
evdash_generator_sessions 120
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "evdash_generator_sessions"))
}

func TestGeneratePublishFailureIsNotFatal(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	svc.pub = &recPublisher{err: errors.New("broker down")}
	_, err = svc.Generate(context.Background())
	assert.NoError(t, err)
}

func TestGenerateCanceled(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.Load()
	assert.Error(t, err)
}

func TestNewNotifierError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notify.Enabled = true
	newNotifier = func(mqtt.Config) (*mqtt.Notifier, error) { return nil, errors.New("refused") }
	defer func() { newNotifier = mqtt.NewNotifier }()
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestManifestLoaderAndHandler(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	m, err := svc.Generate(context.Background())
	require.NoError(t, err)

	other := config.OutputConfig{Dir: t.TempDir()}
	other.SetDefaults()
	store := dashboard.NewStore()
	require.NoError(t, store.Reload(manifestLoader(other, m)))

	h := Handler(store)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/kpis", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var k analytics.KPIs
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &k))
	assert.Equal(t, 120, k.Sessions)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Error(t, store.Reload(manifestLoader(other, mqtt.Manifest{})))
}

func TestWriteReport(t *testing.T) {
	ds := model.Dataset{
		Stations: []model.Station{{StationID: 1, StationName: "SC_01", Region: "North", ChargerType: "V2"}},
		Sessions: []model.Session{{SessionID: "a", StationID: 1, Revenue: 2, Cost: 1}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ds, ReportOptions{Table: TableRevenueCost}))
	assert.Equal(t, "station_name,revenue,cost\nSC_01,2,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteReport(&buf, ds, ReportOptions{Table: TableKPIs, Format: "json"}))
	assert.JSONEq(t, `{"sessions":1,"avg_wait":0,"total_revenue":2,"avg_nps":0}`, buf.String())

	for _, name := range ReportTables() {
		buf.Reset()
		require.NoError(t, WriteReport(&buf, ds, ReportOptions{Table: name}), name)
		assert.True(t, strings.Contains(buf.String(), "\n"), name)
	}

	assert.Error(t, WriteReport(&buf, ds, ReportOptions{Table: "map"}))
	assert.Error(t, WriteReport(&buf, ds, ReportOptions{Table: TableKPIs, Format: "xml"}))
}
