package logs

// LogEntry is one normalized log line from a Loki stream.
type LogEntry struct {
	Timestamp    string            `json:"timestamp"`    // RFC3339, derived from the nanosecond epoch
	TimestampNs  string            `json:"timestamp_ns"` // raw nanosecond timestamp as returned by Loki
	LogLine      string            `json:"log_line"`
	StreamLabels map[string]string `json:"stream_labels"`
	ServiceName  string            `json:"service_name"`
	SeverityText string            `json:"severity_text"`
}

// TimeRange echoes the requested query window.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// QuerySummary carries log query statistics.
type QuerySummary struct {
	TotalEntries int       `json:"total_entries"`
	StreamsCount int       `json:"streams_count"`
	QueryTime    string    `json:"query_time"`
	TimeRange    TimeRange `json:"time_range"`
}

// QueryParameters echoes the paging parameters of a query.
type QueryParameters struct {
	Limit     int    `json:"limit"`
	Direction string `json:"direction"`
}

// QueryResult is the full query_logs response.
type QueryResult struct {
	Query           string          `json:"query"`
	ResultType      string          `json:"result_type"`
	Logs            []LogEntry      `json:"logs"`
	Summary         QuerySummary    `json:"summary"`
	QueryParameters QueryParameters `json:"query_parameters"`
}

// TraceCorrelationResult is the search_logs_by_trace_id response: a log query
// result annotated with the correlated trace.
type TraceCorrelationResult struct {
	QueryResult
	TraceID    string `json:"trace_id"`
	SearchType string `json:"search_type"`
}

// LabelsResult is the get_log_labels response.
type LabelsResult struct {
	Labels      []string `json:"labels"`
	LabelsCount int      `json:"labels_count"`
	RetrievedAt string   `json:"retrieved_at"`
}

// LabelValuesResult is the get_label_values response.
type LabelValuesResult struct {
	Label       string   `json:"label"`
	Values      []string `json:"values"`
	ValuesCount int      `json:"values_count"`
	RetrievedAt string   `json:"retrieved_at"`
}
