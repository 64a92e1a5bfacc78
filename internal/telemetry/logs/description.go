package logs

// QueryLogsDescription provides the description for the query_logs tool
const QueryLogsDescription = `Query Loki for logs using LogQL syntax.

Parameters:
- query: LogQL query string. Required.
  To filter by labels (e.g. service_name), use the stream selector: {service_name="user-service"}.
  To filter by fields within JSON logs (e.g. severity_text), parse the log and then filter:
  | json | severity_text="ERROR"
  Example: {service_name="user-service"} | json | severity_text="ERROR"
- start_time: (Optional) Start time, RFC3339 or relative like "5m", "1h".
- end_time: (Optional) End time in RFC3339 format.
- limit: (Optional) Maximum number of log entries to return. Default: 100.
- direction: (Optional) "forward" or "backward". Default: "backward".

Returns the matching log entries with per-entry timestamps, stream labels,
service name and severity, plus summary statistics.`

// GetLogLabelsDescription provides the description for the get_log_labels tool
const GetLogLabelsDescription = `Retrieve all available log stream labels from Loki.

Returns the label names, their count and the retrieval timestamp. Use
get_log_label_values to list the values of a specific label.`

// GetLabelValuesDescription provides the description for the get_log_label_values tool
const GetLabelValuesDescription = `Retrieve all possible values for a specific Loki label.

Parameters:
- label: The label name to get values for (e.g. "service_name"). Required.

Returns the values, their count and the retrieval timestamp.`

// SearchLogsByTraceIDDescription provides the description for the search_logs_by_trace_id tool
const SearchLogsByTraceIDDescription = `Search for logs associated with a specific trace ID.

Parameters:
- trace_id: The trace ID to correlate logs with. Required.
- label: Loki labels for the stream selector (e.g. 'service_name="user-service"'). Required.
- start_time: (Optional) Start time, RFC3339 or relative like "5m", "1h". Defaults to "1h".
- end_time: (Optional) End time in RFC3339 format.
- limit: (Optional) Maximum number of log entries to return. Default: 100.

Builds the LogQL query {<label>} | json | trace_id="<trace_id>" and returns the
matching log entries annotated with the trace ID.`
