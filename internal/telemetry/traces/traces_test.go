package traces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"observability-mcp/internal/backend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func newJaegerClient(t *testing.T, srv *httptest.Server) *backend.Client {
	t.Helper()
	c := backend.NewClient(backend.Jaeger, srv.URL, "/api", 5*time.Second, zap.NewNop())
	t.Cleanup(c.Close)
	return c
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	if result == nil || len(result.Content) != 1 {
		t.Fatalf("result = %+v, want one content item", result)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), v); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
}

func TestGetTraceHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/traces/abc123" {
			t.Errorf("path = %q, want /api/traces/abc123", r.URL.Path)
		}
		w.Write([]byte(`{"data": [` + traceFixture + `]}`))
	}))
	defer srv.Close()

	handler := NewGetTraceHandler(newJaegerClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetTraceArgs{TraceID: "abc123"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var trace Trace
	decodeResult(t, result, &trace)

	if trace.TraceID != "abc123" {
		t.Errorf("trace_id = %q, want %q", trace.TraceID, "abc123")
	}
	if len(trace.Spans) != 3 {
		t.Errorf("span count = %d, want 3", len(trace.Spans))
	}
}

func TestGetTraceHandlerValidation(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	handler := NewGetTraceHandler(newJaegerClient(t, srv))
	_, _, err := handler(context.Background(), nil, GetTraceArgs{})
	if err == nil {
		t.Fatal("expected validation error for empty trace ID")
	}
	if requests != 0 {
		t.Errorf("validation failure issued %d network calls, want 0", requests)
	}

	var be *backend.Error
	if !errors.As(err, &be) || be.Backend != backend.Jaeger {
		t.Errorf("error = %v, want jaeger-tagged validation error", err)
	}
}

func TestGetTraceHandlerErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantMsg string
	}{
		{
			name:    "missing data field",
			body:    `{"unexpected": []}`,
			status:  http.StatusOK,
			wantMsg: "invalid response format",
		},
		{
			name:    "empty trace data",
			body:    `{"data": []}`,
			status:  http.StatusOK,
			wantMsg: "no trace found with ID: abc123",
		},
		{
			name:    "backend failure",
			body:    `storage unavailable`,
			status:  http.StatusInternalServerError,
			wantMsg: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			handler := NewGetTraceHandler(newJaegerClient(t, srv))
			_, _, err := handler(context.Background(), nil, GetTraceArgs{TraceID: "abc123"})
			if err == nil {
				t.Fatal("expected error")
			}

			var be *backend.Error
			if !errors.As(err, &be) {
				t.Fatalf("error type = %T, want *backend.Error", err)
			}
			if be.Backend != backend.Jaeger {
				t.Errorf("backend tag = %q, want %q", be.Backend, backend.Jaeger)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestGetServicesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": ["user-service", "profile-service", "api-gateway"]}`))
	}))
	defer srv.Close()

	handler := NewGetServicesHandler(newJaegerClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetServicesArgs{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var services []ServiceEntry
	decodeResult(t, result, &services)

	if len(services) != 3 {
		t.Fatalf("service count = %d, want 3", len(services))
	}
	if services[0].Name != "user-service" || services[0].RetrievedAt == "" {
		t.Errorf("first entry = %+v, want name and retrieval timestamp", services[0])
	}
}

func TestSearchTracesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("service"); got != "user-service" {
			t.Errorf("service param = %q, want %q", got, "user-service")
		}
		w.Write([]byte(`{"data": [` + traceFixture + `]}`))
	}))
	defer srv.Close()

	handler := NewSearchTracesHandler(newJaegerClient(t, srv))
	result, _, err := handler(context.Background(), nil, SearchTracesArgs{Service: "user-service"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var search SearchResult
	decodeResult(t, result, &search)

	if search.Summary.TotalFound != 1 {
		t.Errorf("total_found = %d, want 1", search.Summary.TotalFound)
	}
	if len(search.Traces) != 1 || search.Traces[0].SpansCount != 3 {
		t.Fatalf("traces = %+v, want one summary with 3 spans", search.Traces)
	}
	if search.Traces[0].RootSpan == nil || search.Traces[0].RootSpan.OperationName != "GET /users" {
		t.Errorf("root_span = %+v, want the parent-less span", search.Traces[0].RootSpan)
	}
}

func TestGetServiceOperationsHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("service"); got != "user-service" {
			t.Errorf("service param = %q, want %q", got, "user-service")
		}
		w.Write([]byte(`{"data": ["GET /users", "POST /users"]}`))
	}))
	defer srv.Close()

	handler := NewGetServiceOperationsHandler(newJaegerClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetServiceOperationsArgs{ServiceName: "user-service"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var operations []OperationEntry
	decodeResult(t, result, &operations)

	if len(operations) != 2 {
		t.Fatalf("operation count = %d, want 2", len(operations))
	}
	if operations[1].Name != "POST /users" || operations[1].Service != "user-service" {
		t.Errorf("second entry = %+v, want operation bound to its service", operations[1])
	}
}

func TestGetServiceOperationsHandlerValidation(t *testing.T) {
	handler := NewGetServiceOperationsHandler(backend.NewClient(backend.Jaeger, "http://unused", "/api", time.Second, zap.NewNop()))
	if _, _, err := handler(context.Background(), nil, GetServiceOperationsArgs{}); err == nil {
		t.Fatal("expected validation error for empty service name")
	}
}

func TestAnalyzeDependenciesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("endTs") || !q.Has("lookback") {
			t.Error("expected endTs and lookback parameters")
		}
		if got := q.Get("lookback"); got != "43200000" {
			t.Errorf("lookback = %q, want 12 hours in milliseconds", got)
		}
		w.Write([]byte(`{"data": [
			{"parent": "api-gateway", "child": "user-service", "callCount": 150},
			{"parent": "user-service", "child": "postgres", "callCount": 300},
			{"parent": "api-gateway", "child": "profile-service", "callCount": 75}
		]}`))
	}))
	defer srv.Close()

	handler := NewAnalyzeDependenciesHandler(newJaegerClient(t, srv))
	result, _, err := handler(context.Background(), nil, AnalyzeDependenciesArgs{
		ServiceName:   "user-service",
		LookbackHours: 12,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var analysis DependencyAnalysis
	decodeResult(t, result, &analysis)

	if analysis.Summary.TotalDependencies != 2 {
		t.Errorf("total_dependencies = %d, want 2 edges touching user-service", analysis.Summary.TotalDependencies)
	}
	if analysis.LookbackHours != 12 {
		t.Errorf("lookback_hours = %d, want 12", analysis.LookbackHours)
	}
	if len(analysis.Summary.UniqueServices) != 3 {
		t.Errorf("unique_services = %v, want 3 distinct services", analysis.Summary.UniqueServices)
	}
}
