// Package infra contains technical adapters such as the parquet snapshot
// store, the MQTT manifest notifier and metrics recorders. These packages
// should depend only on the interfaces defined in the core packages.
package infra
