// Package metrics defines how generator runs are reported. A RunRecorder
// receives one RunEvent per completed pipeline; implementations such as the
// Prometheus and InfluxDB recorders live in infra/metrics and register
// themselves in the factory registry used by NewRunRecorder.
package metrics
