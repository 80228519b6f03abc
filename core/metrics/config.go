package metrics

import "github.com/kilianp07/orsched/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddress is where /metrics is served; empty disables it.
	PrometheusAddress string `json:"prometheus_address"`
}
