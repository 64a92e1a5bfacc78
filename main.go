// An MCP server that lets AI agents query observability backends:
// distributed traces from Jaeger, logs from Loki and metrics from Prometheus.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"observability-mcp/internal/backend"
	"observability-mcp/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/peterbourgon/ff/v3"
	"go.uber.org/zap"
)

// Version information
var (
	Version   = "dev"     // Set by goreleaser
	CommitSHA = "unknown" // Set by goreleaser
	BuildTime = "unknown" // Set by goreleaser
)

// Per-backend request timeouts. Jaeger's query API is the fast local one;
// Loki and Prometheus queries can legitimately take longer.
const (
	jaegerTimeout     = 10 * time.Second
	lokiTimeout       = 30 * time.Second
	prometheusTimeout = 30 * time.Second
)

func main() {
	cfg, err := setupConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	clients := newBackendClients(cfg, logger)
	defer clients.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "observability-mcp",
		Version: Version,
	}, nil)

	registerAllTools(server, clients)
	registerAllPrompts(server)

	logger.Info("starting observability MCP server",
		zap.String("version", Version),
		zap.String("jaeger_url", cfg.JaegerURL),
		zap.String("loki_url", cfg.LokiURL),
		zap.String("prometheus_url", cfg.PrometheusURL))

	if cfg.HTTPMode {
		if err := NewHTTPServer(server, cfg, logger).Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// setupConfig initializes and parses the configuration. Every flag can also
// be set through its upper-snake environment variable, e.g. JAEGER_URL.
func setupConfig(args []string) (models.Config, error) {
	fs := flag.NewFlagSet("observability-mcp", flag.ExitOnError)

	var cfg models.Config
	fs.StringVar(&cfg.JaegerURL, "jaeger-url", "http://localhost:16686", "Jaeger query API base URL")
	fs.StringVar(&cfg.LokiURL, "loki-url", "http://localhost:3100", "Loki API base URL")
	fs.StringVar(&cfg.PrometheusURL, "prometheus-url", "http://localhost:9090", "Prometheus API base URL")
	fs.BoolVar(&cfg.HTTPMode, "http", false, "serve MCP over HTTP instead of stdio")
	fs.StringVar(&cfg.Host, "host", "localhost", "HTTP listen host")
	fs.StringVar(&cfg.Port, "port", "8080", "HTTP listen port")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	var configFile string
	fs.StringVar(&configFile, "config", "", "config file path")

	err := ff.Parse(fs, args,
		ff.WithEnvVarNoPrefix(),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// BackendClients holds the one long-lived gateway per backend. Created once
// at startup, closed once at shutdown.
type BackendClients struct {
	Jaeger     *backend.Client
	Loki       *backend.Client
	Prometheus *backend.Client
}

func newBackendClients(cfg models.Config, logger *zap.Logger) *BackendClients {
	return &BackendClients{
		Jaeger:     backend.NewClient(backend.Jaeger, cfg.JaegerURL, "/api", jaegerTimeout, logger),
		Loki:       backend.NewClient(backend.Loki, cfg.LokiURL, "", lokiTimeout, logger),
		Prometheus: backend.NewClient(backend.Prometheus, cfg.PrometheusURL, "/api/v1", prometheusTimeout, logger),
	}
}

// Close releases every backend client.
func (c *BackendClients) Close() {
	c.Jaeger.Close()
	c.Loki.Close()
	c.Prometheus.Close()
}
