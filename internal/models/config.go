package models

// Config holds the server configuration parameters
type Config struct {
	// Backend base URLs, each independently overridable
	JaegerURL     string // Jaeger query API
	LokiURL       string // Loki API
	PrometheusURL string // Prometheus API

	// HTTP transport configuration
	HTTPMode bool   // Serve MCP over HTTP instead of stdio
	Host     string // HTTP listen host
	Port     string // HTTP listen port

	// Debug enables debug-level logging
	Debug bool
}
