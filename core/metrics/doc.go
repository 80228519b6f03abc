// Package metrics defines the sinks that observe analysis runs. Concrete
// sinks (Prometheus, InfluxDB) live in infra/metrics and register themselves
// by type name; NewMetricsSink builds them from configuration and fans out
// to several with a MultiSink.
package metrics
