package metrics

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

const instantVectorFixture = `{
	"status": "success",
	"data": {
		"resultType": "vector",
		"result": [
			{"metric": {"__name__": "up", "job": "api"}, "value": [1700000000, "1"]}
		]
	}
}`

func newPromClient(t *testing.T, srv *httptest.Server) *backend.Client {
	t.Helper()
	c := backend.NewClient(backend.Prometheus, srv.URL, "/api/v1", 5*time.Second, zap.NewNop())
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

func TestQueryPrometheusHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query" {
			t.Errorf("path = %q, want /api/v1/query", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "up" {
			t.Errorf("query param = %q, want %q", got, "up")
		}
		w.Write([]byte(instantVectorFixture))
	}))
	defer srv.Close()

	handler := NewQueryPrometheusHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, QueryPrometheusArgs{Query: "up"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var instant InstantResult
	decodeResult(t, result, &instant)

	if instant.Status != "success" {
		t.Errorf("status = %q, want success", instant.Status)
	}
	if instant.Data["resultType"] != "vector" {
		t.Errorf("data = %v, want the backend payload passed through", instant.Data)
	}
	if instant.ExecutedAt == "" {
		t.Error("executed_at should be populated")
	}
}

func TestQueryPrometheusHandlerBackendError(t *testing.T) {
	// The backend reports its own failure with a 200 status: the call must
	// fail with the backend-supplied error text and no partial result.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "errorType": "bad_data", "error": "parse error: unexpected end of input"}`))
	}))
	defer srv.Close()

	handler := NewQueryPrometheusHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, QueryPrometheusArgs{Query: "up"})
	if err == nil {
		t.Fatal("expected error for backend-reported failure")
	}
	if result != nil {
		t.Error("no partial result should be returned on failure")
	}

	var be *backend.Error
	if !errors.As(err, &be) || be.Backend != backend.Prometheus {
		t.Fatalf("error = %v, want prometheus-tagged error", err)
	}
	if !strings.Contains(err.Error(), "parse error: unexpected end of input") {
		t.Errorf("error %q should carry the backend's reported error text", err)
	}
}

func TestQueryPrometheusHandlerUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error"}`))
	}))
	defer srv.Close()

	handler := NewQueryPrometheusHandler(newPromClient(t, srv))
	_, _, err := handler(context.Background(), nil, QueryPrometheusArgs{Query: "up"})
	if err == nil || !strings.Contains(err.Error(), "Unknown error") {
		t.Errorf("error = %v, want fallback error text", err)
	}
}

func TestQueryPrometheusHandlerValidation(t *testing.T) {
	handler := NewQueryPrometheusHandler(backend.NewClient(backend.Prometheus, "http://unused", "/api/v1", time.Second, zap.NewNop()))
	if _, _, err := handler(context.Background(), nil, QueryPrometheusArgs{}); err == nil {
		t.Fatal("expected validation error for empty query")
	}
}

func TestQueryRangeHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query_range" {
			t.Errorf("path = %q, want /api/v1/query_range", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("step"); got != "15s" {
			t.Errorf("step = %q, want default %q", got, "15s")
		}
		w.Write([]byte(`{"status": "success", "data": {"resultType": "matrix", "result": []}}`))
	}))
	defer srv.Close()

	handler := NewQueryRangeHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, QueryRangeArgs{
		Query: "rate(http_requests_total[5m])",
		Start: "2025-01-15T10:00:00Z",
		End:   "2025-01-15T11:00:00Z",
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var rangeResult RangeResult
	decodeResult(t, result, &rangeResult)

	if rangeResult.Step != "15s" {
		t.Errorf("step = %q, want default applied", rangeResult.Step)
	}
	if rangeResult.Data["resultType"] != "matrix" {
		t.Errorf("data = %v, want the matrix payload", rangeResult.Data)
	}
}

func TestQueryRangeHandlerValidation(t *testing.T) {
	handler := NewQueryRangeHandler(backend.NewClient(backend.Prometheus, "http://unused", "/api/v1", time.Second, zap.NewNop()))

	tests := []struct {
		name string
		args QueryRangeArgs
	}{
		{"missing query", QueryRangeArgs{Start: "0", End: "1"}},
		{"missing start", QueryRangeArgs{Query: "up", End: "1"}},
		{"missing end", QueryRangeArgs{Query: "up", Start: "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := handler(context.Background(), nil, tt.args); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetMetricsMetadataHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"http_requests_total": [{"type": "counter", "help": "Total HTTP requests", "unit": ""}],
				"process_start_time_seconds": [{"help": "Start time"}]
			}
		}`))
	}))
	defer srv.Close()

	handler := NewGetMetricsMetadataHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetMetricsMetadataArgs{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var metadata MetadataResult
	decodeResult(t, result, &metadata)

	if metadata.TotalMetrics != 2 {
		t.Errorf("total_metrics = %d, want 2", metadata.TotalMetrics)
	}
	if info := metadata.Metrics["http_requests_total"]; info.Type != "counter" || info.Help != "Total HTTP requests" {
		t.Errorf("metadata entry = %+v", info)
	}
	if info := metadata.Metrics["process_start_time_seconds"]; info.Type != "unknown" {
		t.Errorf("missing type should default to unknown, got %q", info.Type)
	}
}

func TestGetSeriesHandler(t *testing.T) {
	var gotMatch []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMatch = r.URL.Query()["match[]"]
		w.Write([]byte(`{"status": "success", "data": [
			{"__name__": "up", "job": "api"},
			{"__name__": "up", "job": "worker"}
		]}`))
	}))
	defer srv.Close()

	handler := NewGetSeriesHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetSeriesArgs{
		Match: []string{"up", `http_requests_total{job="api"}`},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if len(gotMatch) != 2 {
		t.Errorf("match[] params = %v, want both selectors repeated", gotMatch)
	}

	var series SeriesResult
	decodeResult(t, result, &series)

	if series.TotalSeries != 2 {
		t.Errorf("total_series = %d, want 2", series.TotalSeries)
	}
}

func TestGetSeriesHandlerValidation(t *testing.T) {
	handler := NewGetSeriesHandler(backend.NewClient(backend.Prometheus, "http://unused", "/api/v1", time.Second, zap.NewNop()))
	if _, _, err := handler(context.Background(), nil, GetSeriesArgs{}); err == nil {
		t.Fatal("expected validation error for empty match list")
	}
}

func TestGetLabelNamesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "data": ["__name__", "instance", "job"]}`))
	}))
	defer srv.Close()

	handler := NewGetLabelNamesHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetLabelNamesArgs{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var labels LabelNamesResult
	decodeResult(t, result, &labels)

	if labels.TotalLabels != 3 {
		t.Errorf("total_labels = %d, want 3", labels.TotalLabels)
	}
}

func TestGetLabelValuesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/label/job/values" {
			t.Errorf("path = %q, want label values endpoint", r.URL.Path)
		}
		w.Write([]byte(`{"status": "success", "data": ["api", "worker"]}`))
	}))
	defer srv.Close()

	handler := NewGetLabelValuesHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, GetLabelValuesArgs{LabelName: "job"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var values LabelValuesResult
	decodeResult(t, result, &values)

	if values.LabelName != "job" || values.TotalValues != 2 {
		t.Errorf("result = %+v, want 2 values for job", values)
	}
}
