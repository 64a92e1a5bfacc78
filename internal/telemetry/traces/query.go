package traces

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"observability-mcp/internal/backend"
)

// LimitDefault is the default maximum number of traces returned by a search.
const LimitDefault = 20

// isoTimeLayouts are the accepted input formats for explicit timestamps.
// Layouts without a zone are interpreted as UTC.
var isoTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseISOTime(value string) (time.Time, error) {
	for _, layout := range isoTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}

// stringifyTagValue converts a tag value to the string form the Jaeger API
// expects. Booleans become "true"/"false"; integral JSON numbers keep their
// integer form rather than a trailing ".0".
func stringifyTagValue(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// buildSearchParams translates search arguments into Jaeger's flat query
// parameter set. The tag mapping is stringified and serialized as a single
// JSON-text "tags" parameter.
func buildSearchParams(args SearchTracesArgs) (url.Values, error) {
	params := url.Values{}

	limit := args.Limit
	if limit <= 0 {
		limit = LimitDefault
	}
	params.Set("limit", strconv.Itoa(limit))

	if args.Service != "" {
		params.Set("service", args.Service)
	}
	if args.Operation != "" {
		params.Set("operation", args.Operation)
	}
	if args.MinDuration != "" {
		params.Set("minDuration", args.MinDuration)
	}
	if args.MaxDuration != "" {
		params.Set("maxDuration", args.MaxDuration)
	}
	if args.Lookback != "" {
		params.Set("lookback", args.Lookback)
	}

	if args.StartTime != "" {
		start, err := parseISOTime(args.StartTime)
		if err != nil {
			return nil, backend.Errorf(backend.Jaeger, "invalid start_time: %v", err)
		}
		params.Set("start", strconv.FormatInt(start.UnixMicro(), 10))
	}

	if args.EndTime != "" && args.EndTime != "now" {
		end, err := parseISOTime(args.EndTime)
		if err != nil {
			return nil, backend.Errorf(backend.Jaeger, "invalid end_time: %v", err)
		}
		params.Set("end", strconv.FormatInt(end.UnixMicro(), 10))
	}

	if len(args.Tags) > 0 {
		stringified := make(map[string]string, len(args.Tags))
		for k, v := range args.Tags {
			stringified[k] = stringifyTagValue(v)
		}
		encoded, err := json.Marshal(stringified)
		if err != nil {
			return nil, backend.Wrap(backend.Jaeger, "failed to encode tags", err)
		}
		params.Set("tags", string(encoded))
	}

	return params, nil
}
