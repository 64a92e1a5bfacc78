package metrics

import (
	"context"
	"fmt"

	"observability-mcp/internal/backend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// TimeRangeDefault is the default rate window for HTTP metrics analysis.
const TimeRangeDefault = "5m"

// AnalyzeHTTPMetricsArgs defines the input for the analyze_http_metrics tool.
type AnalyzeHTTPMetricsArgs struct {
	ServiceName string `json:"service_name,omitempty" jsonschema:"Specific service to analyze. Empty analyzes all services."`
	TimeRange   string `json:"time_range,omitempty" jsonschema:"Time range for rate calculations, e.g. \"5m\", \"1h\" (default: \"5m\")"`
}

// CheckAlertingThresholdsArgs defines the input for the check_alerting_thresholds tool.
type CheckAlertingThresholdsArgs struct {
	ServiceName string `json:"service_name,omitempty" jsonschema:"Specific service to check. Empty checks all services."`
}

// serviceFilter renders the service-name label selector interpolated into the
// fixed query templates. Empty when no service is requested.
func serviceFilter(serviceName string) string {
	if serviceName == "" {
		return ""
	}
	return fmt.Sprintf(`{service_name=%q}`, serviceName)
}

type metricQuery struct {
	name  string
	query string
}

// httpMetricQueries builds the eight fixed analysis queries for a service
// filter and rate window.
func httpMetricQueries(filter, timeRange string) []metricQuery {
	return []metricQuery{
		{"request_rate", fmt.Sprintf("rate(http_server_duration_milliseconds_count%s[%s])", filter, timeRange)},
		{"avg_response_time", fmt.Sprintf("rate(http_server_duration_milliseconds_sum%s[%s]) / rate(http_server_duration_milliseconds_count%s[%s])", filter, timeRange, filter, timeRange)},
		{"p95_response_time", fmt.Sprintf("histogram_quantile(0.95, rate(http_server_duration_milliseconds_bucket%s[%s]))", filter, timeRange)},
		{"p99_response_time", fmt.Sprintf("histogram_quantile(0.99, rate(http_server_duration_milliseconds_bucket%s[%s]))", filter, timeRange)},
		{"error_rate", fmt.Sprintf(`rate(http_server_duration_milliseconds_count%s{http_response_status_code=~"5.."}[%s])`, filter, timeRange)},
		{"client_error_rate", fmt.Sprintf(`rate(http_server_duration_milliseconds_count%s{http_response_status_code=~"4.."}[%s])`, filter, timeRange)},
		{"active_requests", fmt.Sprintf("http_server_active_requests%s", filter)},
		{"avg_response_size", fmt.Sprintf("rate(http_server_response_size_bytes_sum%s[%s]) / rate(http_server_response_size_bytes_count%s[%s])", filter, timeRange, filter, timeRange)},
	}
}

type alertQuery struct {
	name        string
	query       string
	description string
	severity    string
}

// alertThresholdQueries builds the five fixed threshold checks.
func alertThresholdQueries(filter string) []alertQuery {
	return []alertQuery{
		{
			name:        "high_error_rate",
			query:       fmt.Sprintf(`rate(http_server_duration_milliseconds_count%s{http_response_status_code=~"5.."}[5m]) > 0.05`, filter),
			description: "Error rate > 5%",
			severity:    "critical",
		},
		{
			name:        "high_response_time",
			query:       fmt.Sprintf("histogram_quantile(0.95, rate(http_server_duration_milliseconds_bucket%s[5m])) > 1000", filter),
			description: "95th percentile response time > 1000ms",
			severity:    "warning",
		},
		{
			name:        "high_active_requests",
			query:       fmt.Sprintf("http_server_active_requests%s > 100", filter),
			description: "Active requests > 100",
			severity:    "warning",
		},
		{
			name:        "low_request_rate",
			query:       fmt.Sprintf("rate(http_server_duration_milliseconds_count%s[5m]) < 0.1", filter),
			description: "Request rate < 0.1 req/sec (possible service down)",
			severity:    "critical",
		},
		{
			name:        "high_client_error_rate",
			query:       fmt.Sprintf(`rate(http_client_duration_milliseconds_count%s{http_response_status_code=~"4.."}[5m]) > 0.1`, filter),
			description: "Client error rate > 10%",
			severity:    "warning",
		},
	}
}

// executeSingleQuery runs one analysis sub-query, downgrading a failure to an
// inline error entry so the composite result keeps going.
func executeSingleQuery(ctx context.Context, client *backend.Client, name, query string) MetricQueryResult {
	instant, err := queryInstant(ctx, client, query, "")
	if err != nil {
		client.Logger().Warn("failed to execute query",
			zap.String("metric", name),
			zap.Error(err))
		return MetricQueryResult{Query: query, Error: err.Error(), Status: "error"}
	}
	return MetricQueryResult{Query: query, Data: instant.Data, Status: instant.Status}
}

// executeAlertCheck runs one threshold query. The alert is firing when the
// result vector is non-empty; a query failure is recorded inline and counted
// as not firing.
func executeAlertCheck(ctx context.Context, client *backend.Client, check alertQuery) AlertCheckResult {
	instant, err := queryInstant(ctx, client, check.query, "")
	if err != nil {
		client.Logger().Warn("failed to execute alert query",
			zap.String("alert", check.name),
			zap.Error(err))
		return AlertCheckResult{
			Query:       check.query,
			Description: check.description,
			Severity:    check.severity,
			Error:       err.Error(),
			Firing:      false,
		}
	}

	vec, _ := instant.Data["result"].([]any)
	firing := len(vec) > 0

	result := AlertCheckResult{
		Query:       check.query,
		Description: check.description,
		Severity:    check.severity,
		Firing:      firing,
	}
	if firing {
		result.Data = instant.Data
	}
	return result
}

// NewAnalyzeHTTPMetricsHandler creates the composite HTTP metrics analysis
// handler. Sub-queries run sequentially; partial success is the default.
func NewAnalyzeHTTPMetricsHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, AnalyzeHTTPMetricsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeHTTPMetricsArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("analyzing HTTP metrics", zap.String("service", args.ServiceName))

		timeRange := args.TimeRange
		if timeRange == "" {
			timeRange = TimeRangeDefault
		}

		analysis := HTTPMetricsAnalysis{
			ServiceName:  args.ServiceName,
			TimeRange:    timeRange,
			AnalysisTime: nowISO(),
			Metrics:      map[string]MetricQueryResult{},
		}

		for _, q := range httpMetricQueries(serviceFilter(args.ServiceName), timeRange) {
			analysis.Metrics[q.name] = executeSingleQuery(ctx, client, q.name, q.query)
		}

		log.Info("HTTP metrics analysis complete", zap.String("service", args.ServiceName))

		result, err := backend.TextResult(analysis)
		return result, nil, backend.Ensure(backend.Prometheus, "failed to analyze HTTP metrics", err)
	}
}

// NewCheckAlertingThresholdsHandler creates the composite alert threshold
// check handler.
func NewCheckAlertingThresholdsHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, CheckAlertingThresholdsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args CheckAlertingThresholdsArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("checking alerting thresholds", zap.String("service", args.ServiceName))

		checks := alertThresholdQueries(serviceFilter(args.ServiceName))

		thresholds := AlertThresholdsResult{
			ServiceName: args.ServiceName,
			CheckTime:   nowISO(),
			Alerts:      map[string]AlertCheckResult{},
			Summary:     AlertCheckSummary{TotalChecks: len(checks)},
		}

		for _, check := range checks {
			checkResult := executeAlertCheck(ctx, client, check)
			thresholds.Alerts[check.name] = checkResult

			if checkResult.Firing {
				thresholds.Summary.FiringAlerts++
				switch check.severity {
				case "critical":
					thresholds.Summary.CriticalAlerts++
				case "warning":
					thresholds.Summary.WarningAlerts++
				}
			}
		}

		log.Info("alert threshold check complete", zap.Int("firing", thresholds.Summary.FiringAlerts))

		result, err := backend.TextResult(thresholds)
		return result, nil, backend.Ensure(backend.Prometheus, "failed to check alerting thresholds", err)
	}
}
