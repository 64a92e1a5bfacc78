package logs

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Defaults for the query_logs tool.
const (
	LimitDefault     = 100
	DirectionDefault = "backward"
	// Default start window for trace correlation searches.
	traceSearchLookbackDefault = "1h"
)

// lokiTimeLayout is the RFC3339 form with microsecond precision sent to Loki.
const lokiTimeLayout = "2006-01-02T15:04:05.000000Z"

var isoTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// formatTime resolves a time argument for the Loki API. Relative durations of
// the form "<n>s", "<n>m" or "<n>h" are resolved against the current UTC
// instant; ISO-8601 timestamps are reformatted. A string that parses as
// neither is passed through unchanged: Loki gets to reject it, not us.
func formatTime(value string, log *zap.Logger) string {
	if value == "" {
		return ""
	}

	if n := len(value); n > 1 && strings.ContainsAny(value[n-1:], "smh") {
		if amount, err := strconv.Atoi(value[:n-1]); err == nil {
			var delta time.Duration
			switch value[n-1] {
			case 's':
				delta = time.Duration(amount) * time.Second
			case 'm':
				delta = time.Duration(amount) * time.Minute
			case 'h':
				delta = time.Duration(amount) * time.Hour
			}
			return time.Now().UTC().Add(-delta).Format(lokiTimeLayout)
		}
	}

	if strings.Contains(value, "T") {
		for _, layout := range isoTimeLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t.UTC().Format(lokiTimeLayout)
			}
		}
		log.Warn("could not parse time string", zap.String("time", value))
	}

	return value
}

// buildQueryParams builds the query_range parameter set.
func buildQueryParams(query, startTime, endTime string, limit int, direction string, log *zap.Logger) url.Values {
	if limit <= 0 {
		limit = LimitDefault
	}
	if direction == "" {
		direction = DirectionDefault
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("direction", direction)

	if start := formatTime(startTime, log); start != "" {
		params.Set("start", start)
	}
	if end := formatTime(endTime, log); end != "" {
		params.Set("end", end)
	}

	return params
}
