package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name used by the generate command.
const PushJob = "evdash_generate"

// Push sends every metric gathered by g to the Pushgateway at url, replacing
// the metrics previously pushed for job. A nil gatherer pushes the default
// registry.
func Push(url, job string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if err := push.New(url, job).Gatherer(g).Push(); err != nil {
		return fmt.Errorf("push to %s: %w", url, err)
	}
	return nil
}
