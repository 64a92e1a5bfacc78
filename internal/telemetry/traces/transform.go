package traces

import (
	"fmt"
	"sort"
	"time"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func mapVal(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func sliceVal(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func strVal(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func int64Val(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// transformSpan flattens a raw Jaeger span into the normalized Span shape.
func transformSpan(raw map[string]any) Span {
	serviceName := ""
	if process := mapVal(raw, "process"); process != nil {
		serviceName = strVal(process, "serviceName")
	}
	return Span{
		SpanID:        strVal(raw, "spanID"),
		TraceID:       strVal(raw, "traceID"),
		OperationName: strVal(raw, "operationName"),
		ServiceName:   serviceName,
		StartTime:     int64Val(raw, "startTime"),
		Duration:      int64Val(raw, "duration"),
		Tags:          sliceVal(raw, "tags"),
		Logs:          sliceVal(raw, "logs"),
		References:    sliceVal(raw, "references"),
	}
}

// transformTrace flattens Jaeger's nested span/process structure into the
// normalized Trace shape.
func transformTrace(traceID string, raw map[string]any) Trace {
	result := Trace{
		TraceID:     traceID,
		Spans:       []Span{},
		Processes:   map[string]any{},
		RetrievedAt: nowISO(),
	}
	if processes := mapVal(raw, "processes"); processes != nil {
		result.Processes = processes
	}
	for _, item := range sliceVal(raw, "spans") {
		if span, ok := item.(map[string]any); ok {
			result.Spans = append(result.Spans, transformSpan(span))
		}
	}
	return result
}

// hasParentRef reports whether a raw span carries a CHILD_OF reference.
func hasParentRef(span map[string]any) bool {
	for _, item := range sliceVal(span, "references") {
		if ref, ok := item.(map[string]any); ok && strVal(ref, "refType") == "CHILD_OF" {
			return true
		}
	}
	return false
}

// findRootSpan returns the first span in source order without a parent
// reference. A malformed trace with several parent-less spans yields the
// first one, which may not be the true root.
func findRootSpan(spans []any) *RootSpan {
	for _, item := range spans {
		span, ok := item.(map[string]any)
		if !ok || hasParentRef(span) {
			continue
		}
		serviceName := ""
		if process := mapVal(span, "process"); process != nil {
			serviceName = strVal(process, "serviceName")
		}
		return &RootSpan{
			OperationName: strVal(span, "operationName"),
			ServiceName:   serviceName,
			StartTime:     int64Val(span, "startTime"),
			Duration:      int64Val(span, "duration"),
			Tags:          sliceVal(span, "tags"),
		}
	}
	return nil
}

// summarizeTrace reduces a raw trace to the search result summary shape.
func summarizeTrace(raw map[string]any) TraceSummary {
	spans := sliceVal(raw, "spans")

	var duration int64
	if len(spans) > 0 {
		if first, ok := spans[0].(map[string]any); ok {
			duration = int64Val(first, "duration")
		}
	}

	seen := map[string]bool{}
	services := []string{}
	for _, item := range spans {
		span, ok := item.(map[string]any)
		if !ok {
			continue
		}
		process := mapVal(span, "process")
		if process == nil {
			continue
		}
		if name := strVal(process, "serviceName"); name != "" && !seen[name] {
			seen[name] = true
			services = append(services, name)
		}
	}
	sort.Strings(services)

	return TraceSummary{
		TraceID:    strVal(raw, "traceID"),
		SpansCount: len(spans),
		Duration:   duration,
		Services:   services,
		RootSpan:   findRootSpan(spans),
	}
}

// transformDependencies converts a raw dependency list into edges, optionally
// filtered to those touching serviceName on either side, and accumulates the
// deduplicated set of services seen across the returned edges.
func transformDependencies(raw []any, serviceName string) ([]Dependency, []string) {
	edges := []Dependency{}
	seen := map[string]bool{}

	for _, item := range raw {
		dep, ok := item.(map[string]any)
		if !ok {
			continue
		}
		parent := strVal(dep, "parent")
		child := strVal(dep, "child")
		if serviceName != "" && parent != serviceName && child != serviceName {
			continue
		}
		edges = append(edges, Dependency{
			ParentService: parent,
			ChildService:  child,
			CallCount:     int64Val(dep, "callCount"),
			Relationship:  fmt.Sprintf("%s -> %s", parent, child),
		})
		seen[parent] = true
		seen[child] = true
	}

	services := make([]string, 0, len(seen))
	for name := range seen {
		services = append(services, name)
	}
	sort.Strings(services)

	return edges, services
}
