package availability

import (
	"strconv"
	"strings"
	"time"
)

// localLayouts are ISO-8601 forms without an offset; they are read in the
// caller's location.
var localLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDate reads an ISO-8601 date or local date-time ("2024-05-01",
// "20240501", "2024-05-01T10:00:00.000") or an RFC 3339 timestamp and returns
// that day at start-of-day in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, invalidRange("date is required")
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return StartOfDay(t, loc), nil
		}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalidRange("unparseable date " + strconv.Quote(raw))
	}
	return StartOfDay(t, loc), nil
}
