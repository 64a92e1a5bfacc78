// Package metrics exposes the Prometheus HTTP API as MCP tools: instant and
// range PromQL queries, metadata and label discovery, series lookup, and two
// composite analyses built on fixed query templates.
package metrics

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"observability-mcp/internal/backend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// StepDefault is the default range query resolution.
const StepDefault = "15s"

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// QueryPrometheusArgs defines the input for the query_prometheus tool.
type QueryPrometheusArgs struct {
	Query string `json:"query" jsonschema:"The PromQL query to execute"`
	Time  string `json:"time,omitempty" jsonschema:"Evaluation timestamp, RFC3339 or Unix timestamp (default: now)"`
}

// QueryRangeArgs defines the input for the query_range_prometheus tool.
type QueryRangeArgs struct {
	Query string `json:"query" jsonschema:"The PromQL query to execute"`
	Start string `json:"start" jsonschema:"Start timestamp, RFC3339 or Unix timestamp"`
	End   string `json:"end" jsonschema:"End timestamp, RFC3339 or Unix timestamp"`
	Step  string `json:"step,omitempty" jsonschema:"Query resolution step width, e.g. \"15s\", \"1m\" (default: \"15s\")"`
}

// GetMetricsMetadataArgs defines the input for the get_metrics_metadata tool.
type GetMetricsMetadataArgs struct{}

// GetLabelNamesArgs defines the input for the get_label_names tool.
type GetLabelNamesArgs struct{}

// GetLabelValuesArgs defines the input for the get_label_values tool.
type GetLabelValuesArgs struct {
	LabelName string `json:"label_name" jsonschema:"The name of the label to get values for"`
}

// GetSeriesArgs defines the input for the get_series tool.
type GetSeriesArgs struct {
	Match []string `json:"match" jsonschema:"Series selectors, e.g. [\"up\", \"http_requests_total{job=\\\"api\\\"}\"]"`
	Start string   `json:"start,omitempty" jsonschema:"Start timestamp, RFC3339 or Unix timestamp"`
	End   string   `json:"end,omitempty" jsonschema:"End timestamp, RFC3339 or Unix timestamp"`
}

// checkStatus validates Prometheus's own status field and surfaces the
// backend-supplied error text on anything other than success.
func checkStatus(response map[string]any, what string) error {
	status, _ := response["status"].(string)
	if status == "success" {
		return nil
	}
	errText, _ := response["error"].(string)
	if errText == "" {
		errText = "Unknown error"
	}
	return backend.Errorf(backend.Prometheus, "%s: %s", what, errText)
}

func dataMap(response map[string]any) map[string]any {
	if data, ok := response["data"].(map[string]any); ok {
		return data
	}
	return map[string]any{}
}

func warnings(response map[string]any) []any {
	w, _ := response["warnings"].([]any)
	return w
}

// queryInstant runs one instant query. Shared by the query_prometheus tool
// and the composite analyses.
func queryInstant(ctx context.Context, client *backend.Client, query, evalTime string) (*InstantResult, error) {
	if query == "" {
		return nil, backend.Errorf(backend.Prometheus, "query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	if evalTime != "" {
		params.Set("time", evalTime)
	}

	response, err := client.Get(ctx, "/query", params)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(response, "Prometheus query failed"); err != nil {
		return nil, err
	}

	status, _ := response["status"].(string)
	return &InstantResult{
		Query:      query,
		Status:     status,
		Data:       dataMap(response),
		ExecutedAt: nowISO(),
		Warnings:   warnings(response),
	}, nil
}

// NewQueryPrometheusHandler creates a handler for instant PromQL queries.
func NewQueryPrometheusHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, QueryPrometheusArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args QueryPrometheusArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("executing Prometheus query", zap.String("query", args.Query))

		instant, err := queryInstant(ctx, client, args.Query, args.Time)
		if err != nil {
			return nil, nil, err
		}

		resultType, _ := instant.Data["resultType"].(string)
		resultCount := 0
		if vec, ok := instant.Data["result"].([]any); ok {
			resultCount = len(vec)
		}
		log.Info("query complete", zap.String("result_type", resultType), zap.Int("count", resultCount))

		result, err := backend.TextResult(instant)
		return result, nil, backend.Ensure(backend.Prometheus, "failed to execute query", err)
	}
}

// NewQueryRangeHandler creates a handler for range PromQL queries.
func NewQueryRangeHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, QueryRangeArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args QueryRangeArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("executing Prometheus range query",
			zap.String("query", args.Query),
			zap.String("start", args.Start),
			zap.String("end", args.End))

		if args.Query == "" {
			return nil, nil, backend.Errorf(backend.Prometheus, "query is required")
		}
		if args.Start == "" {
			return nil, nil, backend.Errorf(backend.Prometheus, "start time is required")
		}
		if args.End == "" {
			return nil, nil, backend.Errorf(backend.Prometheus, "end time is required")
		}

		step := args.Step
		if step == "" {
			step = StepDefault
		}

		params := url.Values{}
		params.Set("query", args.Query)
		params.Set("start", args.Start)
		params.Set("end", args.End)
		params.Set("step", step)

		response, err := client.Get(ctx, "/query_range", params)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStatus(response, "Prometheus range query failed"); err != nil {
			return nil, nil, err
		}

		status, _ := response["status"].(string)
		rangeResult := RangeResult{
			Query:      args.Query,
			Start:      args.Start,
			End:        args.End,
			Step:       step,
			Status:     status,
			Data:       dataMap(response),
			ExecutedAt: nowISO(),
			Warnings:   warnings(response),
		}

		result, err := backend.TextResult(rangeResult)
		return result, nil, backend.Ensure(backend.Prometheus, "failed to execute range query", err)
	}
}

// NewGetMetricsMetadataHandler creates a handler that lists metric metadata.
func NewGetMetricsMetadataHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetMetricsMetadataArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetMetricsMetadataArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching metrics metadata from Prometheus")

		response, err := client.Get(ctx, "/metadata", nil)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStatus(response, "failed to get metadata"); err != nil {
			return nil, nil, err
		}

		metadata := MetadataResult{
			Metrics:     map[string]MetricInfo{},
			RetrievedAt: nowISO(),
		}

		raw := dataMap(response)
		metadata.TotalMetrics = len(raw)
		for name, value := range raw {
			// Prometheus returns a list of entries per metric; the first wins.
			entries, ok := value.([]any)
			if !ok || len(entries) == 0 {
				continue
			}
			info, ok := entries[0].(map[string]any)
			if !ok {
				continue
			}
			metricType, _ := info["type"].(string)
			if metricType == "" {
				metricType = "unknown"
			}
			help, _ := info["help"].(string)
			unit, _ := info["unit"].(string)
			metadata.Metrics[name] = MetricInfo{Type: metricType, Help: help, Unit: unit}
		}

		log.Info("retrieved metadata", zap.Int("metrics", metadata.TotalMetrics))

		result, err := backend.TextResult(metadata)
		return result, nil, backend.Ensure(backend.Prometheus, "failed to get metrics metadata", err)
	}
}

// NewGetLabelNamesHandler creates a handler that lists all label names.
func NewGetLabelNamesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetLabelNamesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetLabelNamesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching label names from Prometheus")

		response, err := client.Get(ctx, "/labels", nil)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStatus(response, "failed to get label names"); err != nil {
			return nil, nil, err
		}

		labels := stringSlice(response["data"])
		log.Info("retrieved label names", zap.Int("count", len(labels)))

		result, err := backend.TextResult(LabelNamesResult{
			Labels:      labels,
			TotalLabels: len(labels),
			RetrievedAt: nowISO(),
		})
		return result, nil, backend.Ensure(backend.Prometheus, "failed to get label names", err)
	}
}

// NewGetLabelValuesHandler creates a handler that lists the values of one label.
func NewGetLabelValuesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetLabelValuesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetLabelValuesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching label values", zap.String("label", args.LabelName))

		if args.LabelName == "" {
			return nil, nil, backend.Errorf(backend.Prometheus, "label name is required")
		}

		endpoint := fmt.Sprintf("/label/%s/values", url.PathEscape(args.LabelName))
		response, err := client.Get(ctx, endpoint, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStatus(response, "failed to get label values"); err != nil {
			return nil, nil, err
		}

		values := stringSlice(response["data"])
		log.Info("retrieved label values", zap.String("label", args.LabelName), zap.Int("count", len(values)))

		result, err := backend.TextResult(LabelValuesResult{
			LabelName:   args.LabelName,
			Values:      values,
			TotalValues: len(values),
			RetrievedAt: nowISO(),
		})
		return result, nil, backend.Ensure(backend.Prometheus, "failed to get label values", err)
	}
}

// NewGetSeriesHandler creates a handler that finds series by label selectors.
func NewGetSeriesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetSeriesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetSeriesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("finding series", zap.Strings("match", args.Match))

		if len(args.Match) == 0 {
			return nil, nil, backend.Errorf(backend.Prometheus, "at least one match selector is required")
		}

		params := url.Values{"match[]": args.Match}
		if args.Start != "" {
			params.Set("start", args.Start)
		}
		if args.End != "" {
			params.Set("end", args.End)
		}

		response, err := client.Get(ctx, "/series", params)
		if err != nil {
			return nil, nil, err
		}
		if err := checkStatus(response, "failed to find series"); err != nil {
			return nil, nil, err
		}

		series, _ := response["data"].([]any)
		if series == nil {
			series = []any{}
		}
		log.Info("found series", zap.Int("count", len(series)))

		result, err := backend.TextResult(SeriesResult{
			MatchSelectors: args.Match,
			Start:          args.Start,
			End:            args.End,
			Series:         series,
			TotalSeries:    len(series),
			RetrievedAt:    nowISO(),
		})
		return result, nil, backend.Ensure(backend.Prometheus, "failed to find series", err)
	}
}

// stringSlice extracts a []string from a raw JSON array.
func stringSlice(data any) []string {
	items, _ := data.([]any)
	values := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
