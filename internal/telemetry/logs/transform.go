package logs

import (
	"strconv"
	"time"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// streamLabels converts a raw stream label mapping into string form.
func streamLabels(raw map[string]any) map[string]string {
	labels := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			labels[k] = s
		}
	}
	return labels
}

// formatLogEntries flattens Loki's per-stream value structure into LogEntry
// records, deriving an RFC3339 timestamp from every nanosecond timestamp and
// copying the service_name and severity_text stream labels onto each entry.
// The second return value is the total entry count across all streams.
func formatLogEntries(results []any) ([]LogEntry, int) {
	entries := []LogEntry{}
	total := 0

	for _, item := range results {
		stream, ok := item.(map[string]any)
		if !ok {
			continue
		}

		labels := map[string]string{}
		if raw, ok := stream["stream"].(map[string]any); ok {
			labels = streamLabels(raw)
		}

		values, _ := stream["values"].([]any)
		total += len(values)

		for _, v := range values {
			pair, ok := v.([]any)
			if !ok || len(pair) < 2 {
				continue
			}
			timestampNs, _ := pair[0].(string)
			logLine, _ := pair[1].(string)

			timestamp := ""
			if ns, err := strconv.ParseInt(timestampNs, 10, 64); err == nil {
				timestamp = time.Unix(0, ns).UTC().Format(time.RFC3339Nano)
			}

			entries = append(entries, LogEntry{
				Timestamp:    timestamp,
				TimestampNs:  timestampNs,
				LogLine:      logLine,
				StreamLabels: labels,
				ServiceName:  labels["service_name"],
				SeverityText: labels["severity_text"],
			})
		}
	}

	return entries, total
}

// stringSlice extracts a []string from a raw JSON array.
func stringSlice(data any) []string {
	items, _ := data.([]any)
	values := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
