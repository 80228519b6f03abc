package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/orsched/infra/mqtt"
)

// FixturesConfig points at the schedule snapshot to serve.
type FixturesConfig struct {
	// Path to a YAML or JSON snapshot; empty loads the builtin demo day.
	Path string `json:"path"`
}

// ServerConfig defines the HTTP API settings.
type ServerConfig struct {
	Address string `json:"address"`
	// AnalysisInterval is the period between background analysis runs.
	AnalysisInterval time.Duration `json:"analysis_interval"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.AnalysisInterval == 0 {
		c.AnalysisInterval = time.Minute
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.AnalysisInterval < time.Second {
		return fmt.Errorf("analysis_interval must be at least 1s, got %s", c.AnalysisInterval)
	}
	return nil
}

// AlertsConfig controls alert publication over MQTT.
type AlertsConfig struct {
	Enabled     bool        `json:"enabled"`
	TopicPrefix string      `json:"topic_prefix"`
	MQTT        mqtt.Config `json:"mqtt"`
}

// SetDefaults applies sane defaults.
func (c *AlertsConfig) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "orsched/alerts"
	}
}

// Validate requires a broker when publication is enabled.
func (c AlertsConfig) Validate() error {
	if c.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when alerts are enabled")
	}
	return nil
}
