// Package infra holds the adapters behind the core interfaces: the MQTT
// alert publisher, Prometheus and InfluxDB sinks, Sentry, and zerolog.
package infra
