package main

import (
	"observability-mcp/internal/telemetry/logs"
	"observability-mcp/internal/telemetry/metrics"
	"observability-mcp/internal/telemetry/traces"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerAllTools wires every backend tool into the MCP server.
func registerAllTools(server *mcp.Server, clients *BackendClients) {
	registerTraceTools(server, clients)
	registerLogTools(server, clients)
	registerMetricTools(server, clients)
}

func registerTraceTools(server *mcp.Server, clients *BackendClients) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_services",
		Description: traces.GetServicesDescription,
	}, traces.NewGetServicesHandler(clients.Jaeger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trace",
		Description: traces.GetTraceDescription,
	}, traces.NewGetTraceHandler(clients.Jaeger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_traces",
		Description: traces.SearchTracesDescription,
	}, traces.NewSearchTracesHandler(clients.Jaeger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_service_operations",
		Description: traces.GetServiceOperationsDescription,
	}, traces.NewGetServiceOperationsHandler(clients.Jaeger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_service_dependencies",
		Description: traces.AnalyzeDependenciesDescription,
	}, traces.NewAnalyzeDependenciesHandler(clients.Jaeger))
}

func registerLogTools(server *mcp.Server, clients *BackendClients) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_logs",
		Description: logs.QueryLogsDescription,
	}, logs.NewQueryLogsHandler(clients.Loki))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_log_labels",
		Description: logs.GetLogLabelsDescription,
	}, logs.NewGetLogLabelsHandler(clients.Loki))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_log_label_values",
		Description: logs.GetLabelValuesDescription,
	}, logs.NewGetLabelValuesHandler(clients.Loki))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_logs_by_trace_id",
		Description: logs.SearchLogsByTraceIDDescription,
	}, logs.NewSearchLogsByTraceIDHandler(clients.Loki))
}

func registerMetricTools(server *mcp.Server, clients *BackendClients) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_prometheus",
		Description: metrics.QueryPrometheusDescription,
	}, metrics.NewQueryPrometheusHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_range_prometheus",
		Description: metrics.QueryRangeDescription,
	}, metrics.NewQueryRangeHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metrics_metadata",
		Description: metrics.GetMetricsMetadataDescription,
	}, metrics.NewGetMetricsMetadataHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metric_label_names",
		Description: metrics.GetLabelNamesDescription,
	}, metrics.NewGetLabelNamesHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metric_label_values",
		Description: metrics.GetLabelValuesDescription,
	}, metrics.NewGetLabelValuesHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_series",
		Description: metrics.GetSeriesDescription,
	}, metrics.NewGetSeriesHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_http_metrics",
		Description: metrics.AnalyzeHTTPMetricsDescription,
	}, metrics.NewAnalyzeHTTPMetricsHandler(clients.Prometheus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_alerting_thresholds",
		Description: metrics.CheckAlertingThresholdsDescription,
	}, metrics.NewCheckAlertingThresholdsHandler(clients.Prometheus))
}
