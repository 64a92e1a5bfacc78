package traces

// GetServicesDescription provides the description for the get_services tool
const GetServicesDescription = `Retrieve all service names known to the Jaeger tracing backend.

Returns one entry per service with its name and the retrieval timestamp.
Use this first to discover which services can be queried with the other trace tools.`

// GetTraceDescription provides the description for the get_trace tool
const GetTraceDescription = `Retrieve a single trace and all of its spans by trace ID from Jaeger.

Parameters:
- trace_id: The unique identifier of the trace to retrieve. Required.

Returns the trace ID, every span (span ID, operation name, service name, start time,
duration, tags, logs and parent references), the process mapping and the retrieval timestamp.`

// SearchTracesDescription provides the description for the search_traces tool
const SearchTracesDescription = `Search for traces in Jaeger based on various criteria.

Parameters:
- service: (Optional) Service name to search traces for.
- operation: (Optional) Operation name to filter by.
- tags: (Optional) Tag key/value filters, e.g. {"error": true, "http.status_code": 500}.
  Boolean values are matched as "true"/"false".
- start_time: (Optional) Start of the search window in ISO format.
- end_time: (Optional) End of the search window in ISO format, or "now".
- limit: (Optional) Maximum number of traces to return. Default: 20.
- min_duration / max_duration: (Optional) Duration bounds, e.g. "100ms", "2s".
- lookback: (Optional) Lookback window, e.g. "1h", "2d".

Returns a summary per matched trace: trace ID, span count, duration, the set of
services involved, and the root span (the span without a parent reference).`

// GetServiceOperationsDescription provides the description for the get_service_operations tool
const GetServiceOperationsDescription = `Retrieve all operations recorded for a specific service from Jaeger.

Parameters:
- service_name: The name of the service to list operations for. Required.

Returns one entry per operation with its name, the owning service and the retrieval timestamp.`

// AnalyzeDependenciesDescription provides the description for the analyze_service_dependencies tool
const AnalyzeDependenciesDescription = `Analyze service-to-service dependencies from Jaeger traces within a time window.

Parameters:
- service_name: (Optional) Only return dependency edges touching this service,
  as either caller or callee. Leave empty to analyze all services.
- lookback_hours: (Optional) How many hours to look back. Default: 24.

Returns one edge per dependency (parent service, child service, call count and a
"parent -> child" relationship label) plus summary statistics with the total edge
count and the deduplicated list of services seen.`
