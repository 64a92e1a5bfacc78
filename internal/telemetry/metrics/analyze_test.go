package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServiceFilter(t *testing.T) {
	tests := []struct {
		service string
		want    string
	}{
		{"", ""},
		{"checkout", `{service_name="checkout"}`},
	}
	for _, tt := range tests {
		if got := serviceFilter(tt.service); got != tt.want {
			t.Errorf("serviceFilter(%q) = %q, want %q", tt.service, got, tt.want)
		}
	}
}

func TestHTTPMetricQueries(t *testing.T) {
	queries := httpMetricQueries(`{service_name="checkout"}`, "5m")

	if len(queries) != 8 {
		t.Fatalf("query count = %d, want 8", len(queries))
	}

	byName := map[string]string{}
	for _, q := range queries {
		byName[q.name] = q.query
	}

	if got := byName["request_rate"]; got != `rate(http_server_duration_milliseconds_count{service_name="checkout"}[5m])` {
		t.Errorf("request_rate = %q", got)
	}
	if got := byName["p95_response_time"]; !strings.Contains(got, "histogram_quantile(0.95") {
		t.Errorf("p95_response_time = %q", got)
	}
	if got := byName["error_rate"]; !strings.Contains(got, `http_response_status_code=~"5.."`) {
		t.Errorf("error_rate = %q", got)
	}
	if got := byName["active_requests"]; got != `http_server_active_requests{service_name="checkout"}` {
		t.Errorf("active_requests = %q", got)
	}
}

func TestAnalyzeHTTPMetricsHandlerPartialFailure(t *testing.T) {
	// One of the eight sub-queries gets a backend 500; the composite result
	// must still contain all eight entries and the call must not fail.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.Contains(query, `http_response_status_code=~"5.."`) {
			http.Error(w, "query engine overloaded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(instantVectorFixture))
	}))
	defer srv.Close()

	handler := NewAnalyzeHTTPMetricsHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, AnalyzeHTTPMetricsArgs{ServiceName: "checkout"})
	if err != nil {
		t.Fatalf("composite call must not fail on a sub-query error, got %v", err)
	}

	var analysis HTTPMetricsAnalysis
	decodeResult(t, result, &analysis)

	if analysis.ServiceName != "checkout" {
		t.Errorf("service_name = %q", analysis.ServiceName)
	}
	if analysis.TimeRange != "5m" {
		t.Errorf("time_range = %q, want default 5m", analysis.TimeRange)
	}
	if len(analysis.Metrics) != 8 {
		t.Fatalf("metric count = %d, want all 8 entries", len(analysis.Metrics))
	}

	failed := 0
	for name, metric := range analysis.Metrics {
		if metric.Status == "error" {
			failed++
			if metric.Error == "" {
				t.Errorf("failed metric %q should carry an error message", name)
			}
			if metric.Data != nil {
				t.Errorf("failed metric %q should carry no data", name)
			}
		} else if metric.Status != "success" {
			t.Errorf("metric %q status = %q", name, metric.Status)
		}
	}
	if failed != 1 {
		t.Errorf("failed sub-queries = %d, want exactly 1", failed)
	}
}

func TestCheckAlertingThresholdsHandler(t *testing.T) {
	// Only the high_error_rate threshold returns a non-empty vector.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.Contains(query, `http_server_duration_milliseconds_count{http_response_status_code=~"5.."`) {
			w.Write([]byte(instantVectorFixture))
			return
		}
		w.Write([]byte(`{"status": "success", "data": {"resultType": "vector", "result": []}}`))
	}))
	defer srv.Close()

	handler := NewCheckAlertingThresholdsHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, CheckAlertingThresholdsArgs{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var thresholds AlertThresholdsResult
	decodeResult(t, result, &thresholds)

	if thresholds.Summary.TotalChecks != 5 {
		t.Errorf("total_checks = %d, want 5", thresholds.Summary.TotalChecks)
	}
	if thresholds.Summary.FiringAlerts != 1 {
		t.Errorf("firing_alerts = %d, want 1", thresholds.Summary.FiringAlerts)
	}
	if thresholds.Summary.CriticalAlerts != 1 || thresholds.Summary.WarningAlerts != 0 {
		t.Errorf("severity counts = (%d critical, %d warning), want (1, 0)",
			thresholds.Summary.CriticalAlerts, thresholds.Summary.WarningAlerts)
	}

	alert := thresholds.Alerts["high_error_rate"]
	if !alert.Firing {
		t.Error("high_error_rate should be firing")
	}
	if alert.Data == nil {
		t.Error("firing alert should carry the result data")
	}
	if notFiring := thresholds.Alerts["high_active_requests"]; notFiring.Firing || notFiring.Data != nil {
		t.Errorf("high_active_requests = %+v, want not firing with no data", notFiring)
	}
}

func TestCheckAlertingThresholdsHandlerSubQueryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.Contains(query, "http_server_active_requests") {
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"status": "success", "data": {"resultType": "vector", "result": []}}`))
	}))
	defer srv.Close()

	handler := NewCheckAlertingThresholdsHandler(newPromClient(t, srv))
	result, _, err := handler(context.Background(), nil, CheckAlertingThresholdsArgs{ServiceName: "checkout"})
	if err != nil {
		t.Fatalf("composite call must not fail on a sub-query error, got %v", err)
	}

	var thresholds AlertThresholdsResult
	decodeResult(t, result, &thresholds)

	if len(thresholds.Alerts) != 5 {
		t.Fatalf("alert count = %d, want all 5 entries", len(thresholds.Alerts))
	}

	failed := thresholds.Alerts["high_active_requests"]
	if failed.Error == "" || failed.Firing {
		t.Errorf("failed check = %+v, want inline error and not firing", failed)
	}
	if thresholds.Summary.FiringAlerts != 0 {
		t.Errorf("firing_alerts = %d, want 0", thresholds.Summary.FiringAlerts)
	}
}
