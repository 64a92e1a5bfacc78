// Package traces exposes the Jaeger query API as MCP tools: service and
// operation discovery, single-trace retrieval, trace search and dependency
// analysis.
package traces

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"observability-mcp/internal/backend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// LookbackHoursDefault is the default dependency analysis window.
const LookbackHoursDefault = 24

// GetServicesArgs defines the input for the get_services tool.
type GetServicesArgs struct{}

// GetTraceArgs defines the input for the get_trace tool.
type GetTraceArgs struct {
	TraceID string `json:"trace_id" jsonschema:"The unique identifier of the trace to retrieve"`
}

// SearchTracesArgs defines the input for the search_traces tool.
type SearchTracesArgs struct {
	Service     string         `json:"service,omitempty" jsonschema:"Service name to search traces for"`
	Operation   string         `json:"operation,omitempty" jsonschema:"Operation name to filter by"`
	Tags        map[string]any `json:"tags,omitempty" jsonschema:"Tag filters as key/value pairs, e.g. {\"error\": true}"`
	StartTime   string         `json:"start_time,omitempty" jsonschema:"Start of the search window in ISO format"`
	EndTime     string         `json:"end_time,omitempty" jsonschema:"End of the search window in ISO format, or \"now\""`
	Limit       int            `json:"limit,omitempty" jsonschema:"Maximum number of traces to return (default: 20)"`
	MinDuration string         `json:"min_duration,omitempty" jsonschema:"Minimum trace duration, e.g. \"100ms\""`
	MaxDuration string         `json:"max_duration,omitempty" jsonschema:"Maximum trace duration, e.g. \"2s\""`
	Lookback    string         `json:"lookback,omitempty" jsonschema:"Lookback window, e.g. \"1h\""`
}

// GetServiceOperationsArgs defines the input for the get_service_operations tool.
type GetServiceOperationsArgs struct {
	ServiceName string `json:"service_name" jsonschema:"The name of the service to list operations for"`
}

// AnalyzeDependenciesArgs defines the input for the analyze_service_dependencies tool.
type AnalyzeDependenciesArgs struct {
	ServiceName   string `json:"service_name,omitempty" jsonschema:"Only return edges touching this service. Empty analyzes all services."`
	LookbackHours int    `json:"lookback_hours,omitempty" jsonschema:"How many hours to look back (default: 24)"`
}

// NewGetServicesHandler creates a handler that lists all known services.
func NewGetServicesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetServicesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetServicesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching services from Jaeger")

		response, err := client.Get(ctx, "/services", nil)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid response format from Jaeger API")
		}

		services := []ServiceEntry{}
		if items, ok := data.([]any); ok {
			retrievedAt := nowISO()
			for _, item := range items {
				if name, ok := item.(string); ok {
					services = append(services, ServiceEntry{Name: name, RetrievedAt: retrievedAt})
				}
			}
		}

		log.Info("retrieved services", zap.Int("count", len(services)))

		result, err := backend.TextResult(services)
		return result, nil, backend.Ensure(backend.Jaeger, "failed to get services", err)
	}
}

// NewGetTraceHandler creates a handler that retrieves one trace by ID.
func NewGetTraceHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetTraceArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetTraceArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching trace", zap.String("trace_id", args.TraceID))

		if args.TraceID == "" {
			return nil, nil, backend.Errorf(backend.Jaeger, "trace ID is required")
		}

		response, err := client.Get(ctx, "/traces/"+url.PathEscape(args.TraceID), nil)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid response format from Jaeger API")
		}

		items, _ := data.([]any)
		if len(items) == 0 {
			return nil, nil, backend.Errorf(backend.Jaeger, "no trace found with ID: %s", args.TraceID)
		}

		raw, ok := items[0].(map[string]any)
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid trace data for ID: %s", args.TraceID)
		}

		trace := transformTrace(args.TraceID, raw)
		log.Info("retrieved trace", zap.String("trace_id", args.TraceID), zap.Int("spans", len(trace.Spans)))

		result, err := backend.TextResult(trace)
		return result, nil, backend.Ensure(backend.Jaeger, "failed to get trace", err)
	}
}

// NewSearchTracesHandler creates a handler that searches traces by criteria.
func NewSearchTracesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, SearchTracesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SearchTracesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("searching traces",
			zap.String("service", args.Service),
			zap.String("operation", args.Operation))

		params, err := buildSearchParams(args)
		if err != nil {
			return nil, nil, err
		}

		response, err := client.Get(ctx, "/traces", params)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid response format from Jaeger API")
		}

		items, _ := data.([]any)
		summaries := []TraceSummary{}
		for _, item := range items {
			if raw, ok := item.(map[string]any); ok {
				summaries = append(summaries, summarizeTrace(raw))
			}
		}

		searchResult := SearchResult{
			SearchParameters: args,
			Traces:           summaries,
			Summary: SearchSummary{
				TotalFound: len(items),
				SearchTime: nowISO(),
			},
		}

		log.Info("trace search complete", zap.Int("found", len(summaries)))

		result, err := backend.TextResult(searchResult)
		return result, nil, backend.Ensure(backend.Jaeger, "failed to search traces", err)
	}
}

// NewGetServiceOperationsHandler creates a handler that lists a service's operations.
func NewGetServiceOperationsHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, GetServiceOperationsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetServiceOperationsArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("fetching operations", zap.String("service", args.ServiceName))

		if args.ServiceName == "" {
			return nil, nil, backend.Errorf(backend.Jaeger, "service name is required")
		}

		params := url.Values{}
		params.Set("service", args.ServiceName)

		response, err := client.Get(ctx, "/operations", params)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid response format from Jaeger API")
		}

		operations := []OperationEntry{}
		if items, ok := data.([]any); ok {
			retrievedAt := nowISO()
			for _, item := range items {
				if name, ok := item.(string); ok {
					operations = append(operations, OperationEntry{
						Name:        name,
						Service:     args.ServiceName,
						RetrievedAt: retrievedAt,
					})
				}
			}
		}

		log.Info("retrieved operations",
			zap.String("service", args.ServiceName),
			zap.Int("count", len(operations)))

		result, err := backend.TextResult(operations)
		return result, nil, backend.Ensure(backend.Jaeger, "failed to get operations", err)
	}
}

// NewAnalyzeDependenciesHandler creates a handler that analyzes service dependencies.
func NewAnalyzeDependenciesHandler(client *backend.Client) func(context.Context, *mcp.CallToolRequest, AnalyzeDependenciesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeDependenciesArgs) (*mcp.CallToolResult, any, error) {
		log := client.Logger()
		log.Info("analyzing service dependencies", zap.String("service", args.ServiceName))

		lookbackHours := args.LookbackHours
		if lookbackHours <= 0 {
			lookbackHours = LookbackHoursDefault
		}

		// Jaeger expects endTs and lookback in milliseconds.
		endMs := time.Now().UTC().UnixMilli()
		lookbackMs := int64(lookbackHours) * 3600 * 1000

		params := url.Values{}
		params.Set("endTs", strconv.FormatInt(endMs, 10))
		params.Set("lookback", strconv.FormatInt(lookbackMs, 10))

		response, err := client.Get(ctx, "/dependencies", params)
		if err != nil {
			return nil, nil, err
		}

		data, ok := response["data"]
		if !ok {
			return nil, nil, backend.Errorf(backend.Jaeger, "invalid response format from Jaeger API")
		}

		items, _ := data.([]any)
		edges, services := transformDependencies(items, args.ServiceName)

		analysis := DependencyAnalysis{
			ServiceName:   args.ServiceName,
			LookbackHours: lookbackHours,
			AnalysisTime:  nowISO(),
			Dependencies:  edges,
			Summary: DependencySummary{
				TotalDependencies: len(edges),
				UniqueServices:    services,
			},
		}

		log.Info("dependency analysis complete", zap.Int("edges", len(edges)))

		result, err := backend.TextResult(analysis)
		return result, nil, backend.Ensure(backend.Jaeger, "failed to analyze service dependencies", err)
	}
}
