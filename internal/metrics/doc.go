// Package metrics defines the Prometheus instrumentation for the watcher.
//
// Metrics are registered with the default registry via promauto and exposed
// by the optional promhttp endpoint configured under metrics: in config.yaml.
// When the endpoint is disabled the counters still exist but cost almost
// nothing to update.
package metrics
