package config

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
	Release     string `json:"release"`
	// TracesSampleRate is the share of transactions sent, between 0 and 1.
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

// Enabled reports whether a DSN is configured.
func (c SentryConfig) Enabled() bool { return c.DSN != "" }
