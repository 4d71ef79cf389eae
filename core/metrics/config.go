package metrics

import "github.com/kilianp07/evdash/core/factory"

// Config defines settings for run recorders and the Prometheus endpoint.
type Config struct {
	// PrometheusAddr is the listen address of the /metrics endpoint. Empty
	// disables the endpoint.
	PrometheusAddr string `json:"prometheus_addr"`
	// PushgatewayURL receives the generate command's metrics when set,
	// since that process exits before it could be scraped.
	PushgatewayURL string                 `json:"pushgateway_url"`
	Sinks          []factory.ModuleConfig `json:"sinks"`
}

// SetDefaults leaves the endpoint disabled and records nothing by default.
func (c *Config) SetDefaults() {
	if len(c.Sinks) == 0 {
		c.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	}
}
