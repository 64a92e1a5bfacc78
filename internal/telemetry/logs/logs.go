// Package logs exposes the Loki query API as MCP tools: LogQL queries, label
// discovery and trace-to-log correlation.
package logs

import (
	"context"
	"fmt"
	"net/url"

	"observability-mcp/internal/backend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// QueryLogsArgs defines the input for the query_logs tool.
type QueryLogsArgs struct {
	Query     string `json:"query" jsonschema:"LogQL query string, e.g. {service_name=\"user-service\"} | json | severity_text=\"ERROR\""`
	StartTime string `json:"start_time,omitempty" jsonschema:"Start time, RFC3339 or relative like \"5m\", \"1h\""`
	EndTime   string `json:"end_time,omitempty" jsonschema:"End time in RFC3339 format"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of log entries to return (default: 100)"`
	Direction string `json:"direction,omitempty" jsonschema:"Query direction, \"forward\" or \"backward\" (default: \"backward\")"`
}

// GetLogLabelsArgs defines the input for the get_log_labels tool.
type GetLogLabelsArgs struct{}

// GetLabelValuesArgs defines the input for the get_label_values tool.
type GetLabelValuesArgs struct {
	Label string `json:"label" jsonschema:"The label name to get values for, e.g. \"service_name\""`
}

// SearchLogsByTraceIDArgs defines the input for the search_logs_by_trace_id tool.
type SearchLogsByTraceIDArgs struct {
	TraceID   string `json:"trace_id" jsonschema:"The trace ID to correlate logs with"`
	Label     string `json:"label" jsonschema:"Loki labels for the stream selector, e.g. service_name=\"user-service\""`
	StartTime string `json:"start_time,omitempty" jsonschema:"Start time, RFC3339 or relative like \"5m\", \"1h\" (default: \"1h\")"`
	EndTime   string `json:"end_time,omitempty" jsonschema:"End time in RFC3339 format"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of log entries to return (default: 100)"`
}

// queryLogs runs one LogQL range query and normalizes the response. It is
// shared by the query_logs tool and the trace correlation tool.
func queryLogs(ctx context.Context, client *backend.Client, args QueryLogsArgs) (*QueryResult, error) {
	if args.Query == "" {
		return nil, backend.Errorf(backend.Loki, "query is required")
	}

	params := buildQueryParams(args.Query, args.StartTime, args.EndTime, args.Limit, args.Direction, client.Logger())

	response, err := client.Get(ctx, "/loki/api/v1/query_range", params)
	if err != nil {
		return nil, err
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		return nil, backend.Errorf(backend.Loki, "invalid response format from Loki API")
	}

	resultType, _ := data["resultType"].(string)
	results, _ := data["result"].([]any)

	entries, total := formatLogEntries(results)

	limit := args.Limit
	if limit <= 0 {
		limit = LimitDefault
	}
	direction := args.Direction
	if direction == "" {
		direction = DirectionDefault
	}

	return &QueryResult{
		Query:      args.Query,
		ResultType: resultType,
		Logs:       entries,
		Summary: QuerySummary{
			TotalEntries: total,
			StreamsCount: len(results),
			QueryTime:    nowISO(),
			TimeRange:    TimeRange{Start: args.StartTime, End: args.EndTime},
		},
		QueryParameters: QueryParameters{Limit: limit, Direction: direction},
	}, nil
}

// NewQueryLogsHandler creates a handler for LogQL range queries.
func NewQueryLogsHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, QueryLogsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args QueryLogsArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("querying Loki", zap.String("query", args.Query))

		queryResult, err := queryLogs(ctx, client, args)
		if err != nil {
			return nil, nil, err
		}

		log.Info("log query complete",
			zap.Int("entries", queryResult.Summary.TotalEntries),
			zap.Int("streams", queryResult.Summary.StreamsCount))

		result, err := backend.TextResult(queryResult)
		return result, nil, backend.Ensure(backend.Loki, "failed to query logs", err)
	}
}

// NewGetLogLabelsHandler creates a handler that lists all stream labels.
func NewGetLogLabelsHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetLogLabelsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetLogLabelsArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching labels from Loki")

		response, err := client.Get(ctx, "/loki/api/v1/labels", nil)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Loki, "invalid response format from Loki API")
		}

		labels := stringSlice(data)
		log.Info("retrieved labels", zap.Int("count", len(labels)))

		result, err := backend.TextResult(LabelsResult{
			Labels:      labels,
			LabelsCount: len(labels),
			RetrievedAt: nowISO(),
		})
		return result, nil, backend.Ensure(backend.Loki, "failed to get labels", err)
	}
}

// NewGetLabelValuesHandler creates a handler that lists the values of one label.
func NewGetLabelValuesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetLabelValuesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetLabelValuesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching label values", zap.String("label", args.Label))

		if args.Label == "" {
			return nil, nil, backend.Errorf(backend.Loki, "label name is required")
		}

		endpoint := fmt.Sprintf("/loki/api/v1/label/%s/values", url.PathEscape(args.Label))
		response, err := client.Get(ctx, endpoint, nil)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Loki, "invalid response format from Loki API")
		}

		values := stringSlice(data)
		log.Info("retrieved label values", zap.String("label", args.Label), zap.Int("count", len(values)))

		result, err := backend.TextResult(LabelValuesResult{
			Label:       args.Label,
			Values:      values,
			ValuesCount: len(values),
			RetrievedAt: nowISO(),
		})
		return result, nil, backend.Ensure(backend.Loki, "failed to get label values", err)
	}
}

// NewSearchLogsByTraceIDHandler creates a handler that correlates logs with a trace.
func NewSearchLogsByTraceIDHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, SearchLogsByTraceIDArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SearchLogsByTraceIDArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("searching logs by trace ID",
			zap.String("trace_id", args.TraceID),
			zap.String("label", args.Label))

		if args.TraceID == "" {
			return nil, nil, backend.Errorf(backend.Loki, "trace ID is required")
		}
		if args.Label == "" {
			return nil, nil, backend.Errorf(backend.Loki, "label is required")
		}

		startTime := args.StartTime
		if startTime == "" {
			startTime = traceSearchLookbackDefault
		}

		queryResult, err := queryLogs(ctx, client, QueryLogsArgs{
			Query:     fmt.Sprintf(`{%s} | json | trace_id=%q`, args.Label, args.TraceID),
			StartTime: startTime,
			EndTime:   args.EndTime,
			Limit:     args.Limit,
		})
		if err != nil {
			return nil, nil, err
		}

		log.Info("trace correlation complete",
			zap.String("trace_id", args.TraceID),
			zap.Int("entries", queryResult.Summary.TotalEntries))

		result, err := backend.TextResult(TraceCorrelationResult{
			QueryResult: *queryResult,
			TraceID:     args.TraceID,
			SearchType:  "trace_correlation",
		})
		return result, nil, backend.Ensure(backend.Loki, "failed to search logs by trace ID", err)
	}
}
