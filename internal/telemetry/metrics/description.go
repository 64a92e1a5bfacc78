package metrics

// QueryPrometheusDescription provides the description for the query_prometheus tool
const QueryPrometheusDescription = `Execute a PromQL query against Prometheus for instant values.

Parameters:
- query: The PromQL query to execute. Required.
- time: (Optional) Evaluation timestamp, RFC3339 or Unix timestamp. Defaults to now.

Returns the query, the backend's result payload unmodified, the execution
timestamp and any warnings Prometheus reported.`

// QueryRangeDescription provides the description for the query_range_prometheus tool
const QueryRangeDescription = `Execute a PromQL query against Prometheus over a range of time.

Parameters:
- query: The PromQL query to execute. Required.
- start: Start timestamp, RFC3339 or Unix timestamp. Required.
- end: End timestamp, RFC3339 or Unix timestamp. Required.
- step: (Optional) Query resolution step width, e.g. "15s", "1m", "5m". Default: "15s".

Returns the range vector payload unmodified together with the query metadata.`

// GetMetricsMetadataDescription provides the description for the get_metrics_metadata tool
const GetMetricsMetadataDescription = `Retrieve metadata about available metrics from Prometheus.

Returns the metric names with their type, help text and unit, plus the total
metric count and the retrieval timestamp.`

// GetLabelNamesDescription provides the description for the get_metric_label_names tool
const GetLabelNamesDescription = `Retrieve all label names known to Prometheus.

Returns the label names, their count and the retrieval timestamp.`

// GetLabelValuesDescription provides the description for the get_metric_label_values tool
const GetLabelValuesDescription = `Retrieve all values for a specific Prometheus label.

Parameters:
- label_name: The name of the label to get values for. Required.

Returns the values, their count and the retrieval timestamp.`

// GetSeriesDescription provides the description for the get_series tool
const GetSeriesDescription = `Find time series matching label selectors.

Parameters:
- match: List of series selectors, e.g. ["up", "http_requests_total{job=\"api\"}"]. Required.
- start: (Optional) Start timestamp, RFC3339 or Unix timestamp.
- end: (Optional) End timestamp, RFC3339 or Unix timestamp.

Returns the matching series label sets and their count.`

// AnalyzeHTTPMetricsDescription provides the description for the analyze_http_metrics tool
const AnalyzeHTTPMetricsDescription = `Analyze HTTP metrics for services: request rates, response times and error rates.

Parameters:
- service_name: (Optional) Specific service to analyze. Empty analyzes all services.
- time_range: (Optional) Time range for rate calculations, e.g. "5m", "1h". Default: "5m".

Runs eight PromQL queries (request rate, average/p95/p99 response time, 5xx and
4xx error rates, active requests, average response size) sequentially. A failed
sub-query is recorded inline with an error field instead of failing the whole
analysis.`

// CheckAlertingThresholdsDescription provides the description for the check_alerting_thresholds tool
const CheckAlertingThresholdsDescription = `Check current metrics against common alerting thresholds.

Parameters:
- service_name: (Optional) Specific service to check. Empty checks all services.

Evaluates five threshold queries (high error rate, high response time, high
active requests, low request rate, high client error rate) and reports which
ones are firing, with severity counts in the summary. A failed check is
recorded inline with an error field and counted as not firing.`
