package metrics

// InstantResult is the query_prometheus response: the backend's payload
// passed through unmodified, wrapped with request metadata.
type InstantResult struct {
	Query      string         `json:"query"`
	Status     string         `json:"status"`
	Data       map[string]any `json:"data"`
	ExecutedAt string         `json:"executed_at"`
	Warnings   []any          `json:"warnings,omitempty"`
}

// RangeResult is the query_range_prometheus response.
type RangeResult struct {
	Query      string         `json:"query"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Step       string         `json:"step"`
	Status     string         `json:"status"`
	Data       map[string]any `json:"data"`
	ExecutedAt string         `json:"executed_at"`
	Warnings   []any          `json:"warnings,omitempty"`
}

// MetricInfo is one metric's metadata entry.
type MetricInfo struct {
	Type string `json:"type"`
	Help string `json:"help"`
	Unit string `json:"unit"`
}

// MetadataResult is the get_metrics_metadata response.
type MetadataResult struct {
	TotalMetrics int                   `json:"total_metrics"`
	Metrics      map[string]MetricInfo `json:"metrics"`
	RetrievedAt  string                `json:"retrieved_at"`
}

// LabelNamesResult is the get_label_names response.
type LabelNamesResult struct {
	Labels      []string `json:"labels"`
	TotalLabels int      `json:"total_labels"`
	RetrievedAt string   `json:"retrieved_at"`
}

// LabelValuesResult is the get_label_values response.
type LabelValuesResult struct {
	LabelName   string   `json:"label_name"`
	Values      []string `json:"values"`
	TotalValues int      `json:"total_values"`
	RetrievedAt string   `json:"retrieved_at"`
}

// SeriesResult is the get_series response.
type SeriesResult struct {
	MatchSelectors []string `json:"match_selectors"`
	Start          string   `json:"start,omitempty"`
	End            string   `json:"end,omitempty"`
	Series         []any    `json:"series"`
	TotalSeries    int      `json:"total_series"`
	RetrievedAt    string   `json:"retrieved_at"`
}

// MetricQueryResult is one sub-query of an HTTP metrics analysis. On failure
// the Error field carries the reason and Status is "error"; the composite
// result keeps all entries either way.
type MetricQueryResult struct {
	Query  string         `json:"query"`
	Data   map[string]any `json:"data,omitempty"`
	Status string         `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// HTTPMetricsAnalysis is the analyze_http_metrics response.
type HTTPMetricsAnalysis struct {
	ServiceName  string                       `json:"service_name"`
	TimeRange    string                       `json:"time_range"`
	AnalysisTime string                       `json:"analysis_time"`
	Metrics      map[string]MetricQueryResult `json:"metrics"`
}

// AlertCheckResult is one threshold check of an alerting analysis.
type AlertCheckResult struct {
	Query       string         `json:"query"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Firing      bool           `json:"firing"`
	Data        map[string]any `json:"data,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// AlertCheckSummary aggregates firing counts by severity.
type AlertCheckSummary struct {
	TotalChecks    int `json:"total_checks"`
	FiringAlerts   int `json:"firing_alerts"`
	CriticalAlerts int `json:"critical_alerts"`
	WarningAlerts  int `json:"warning_alerts"`
}

// AlertThresholdsResult is the check_alerting_thresholds response.
type AlertThresholdsResult struct {
	ServiceName string                      `json:"service_name"`
	CheckTime   string                      `json:"check_time"`
	Alerts      map[string]AlertCheckResult `json:"alerts"`
	Summary     AlertCheckSummary           `json:"summary"`
}
