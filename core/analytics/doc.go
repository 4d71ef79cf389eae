// Package analytics turns a loaded dataset into the aggregated views served
// by the dashboard: KPIs, per-station utilization, daily wait times,
// busiest stations, revenue versus cost and queue capacity.
//
// All functions are pure and operate on joined Records.
package analytics
