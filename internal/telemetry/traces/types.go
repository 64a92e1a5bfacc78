package traces

// ServiceEntry is one service name known to Jaeger.
type ServiceEntry struct {
	Name        string `json:"name"`
	RetrievedAt string `json:"retrieved_at"`
}

// OperationEntry is one operation recorded for a service.
type OperationEntry struct {
	Name        string `json:"name"`
	Service     string `json:"service"`
	RetrievedAt string `json:"retrieved_at"`
}

// Span is the normalized shape of a single Jaeger span.
type Span struct {
	SpanID        string `json:"span_id"`
	TraceID       string `json:"trace_id"`
	OperationName string `json:"operation_name"`
	ServiceName   string `json:"service_name"`
	StartTime     int64  `json:"start_time"` // microseconds since epoch
	Duration      int64  `json:"duration"`   // microseconds
	Tags          []any  `json:"tags"`
	Logs          []any  `json:"logs"`
	References    []any  `json:"references"`
}

// Trace is a normalized trace with its spans and process mapping.
type Trace struct {
	TraceID     string         `json:"trace_id"`
	Spans       []Span         `json:"spans"`
	Processes   map[string]any `json:"processes"`
	RetrievedAt string         `json:"retrieved_at"`
}

// RootSpan is the entry-point span of a trace, identified as the first span
// without a parent reference.
type RootSpan struct {
	OperationName string `json:"operation_name"`
	ServiceName   string `json:"service_name"`
	StartTime     int64  `json:"start_time"`
	Duration      int64  `json:"duration"`
	Tags          []any  `json:"tags"`
}

// TraceSummary is the per-trace shape returned by search_traces.
type TraceSummary struct {
	TraceID    string    `json:"trace_id"`
	SpansCount int       `json:"spans_count"`
	Duration   int64     `json:"duration"`
	Services   []string  `json:"services"`
	RootSpan   *RootSpan `json:"root_span"`
}

// SearchSummary carries search result statistics.
type SearchSummary struct {
	TotalFound int    `json:"total_found"`
	SearchTime string `json:"search_time"`
}

// SearchResult is the full search_traces response.
type SearchResult struct {
	SearchParameters SearchTracesArgs `json:"search_parameters"`
	Traces           []TraceSummary   `json:"traces"`
	Summary          SearchSummary    `json:"summary"`
}

// Dependency is one service-to-service dependency edge.
type Dependency struct {
	ParentService string `json:"parent_service"`
	ChildService  string `json:"child_service"`
	CallCount     int64  `json:"call_count"`
	Relationship  string `json:"relationship"` // "parent -> child"
}

// DependencySummary carries dependency analysis statistics.
type DependencySummary struct {
	TotalDependencies int      `json:"total_dependencies"`
	UniqueServices    []string `json:"unique_services"`
}

// DependencyAnalysis is the full analyze_service_dependencies response.
type DependencyAnalysis struct {
	ServiceName   string            `json:"service_name"`
	LookbackHours int               `json:"lookback_hours"`
	AnalysisTime  string            `json:"analysis_time"`
	Dependencies  []Dependency      `json:"dependencies"`
	Summary       DependencySummary `json:"summary"`
}
