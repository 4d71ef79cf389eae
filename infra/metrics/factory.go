package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/evdash/core/factory"
	coremetrics "github.com/kilianp07/evdash/core/metrics"
)

// init registers built-in run recorders.
func init() {
	_ = coremetrics.RegisterRunRecorder("nop", func(map[string]any) (coremetrics.RunRecorder, error) {
		return coremetrics.NopRecorder{}, nil
	})

	_ = coremetrics.RegisterRunRecorder("prometheus", func(map[string]any) (coremetrics.RunRecorder, error) {
		return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterRunRecorder("influx", func(conf map[string]any) (coremetrics.RunRecorder, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxRecorderWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
