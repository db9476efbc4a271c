package health

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format of Status timestamps: UTC, whole
// seconds, literal Z suffix. Consumers that persist the string must parse it
// back with this exact layout.
const TimestampLayout = "2006-01-02T15:04:05Z"

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func formatTimestamp(ms int64) string {
	return fromMillis(ms).Format(TimestampLayout)
}

// encodable reports whether ms formats to a four-digit year that
// parseTimestamp accepts.
func encodable(ms int64) bool {
	year := fromMillis(ms).Year()
	return year >= 0 && year <= 9999
}

// parseTimestamp parses a TimestampLayout string into epoch milliseconds.
// time.Parse tolerates a fractional second the layout does not name, so the
// result is formatted again and must reproduce the input exactly.
func parseTimestamp(s string) (int64, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return 0, err
	}
	if t.Format(TimestampLayout) != s {
		return 0, fmt.Errorf("timestamp %q does not match layout %s", s, TimestampLayout)
	}
	return toMillis(t), nil
}

// wholeSeconds drops the sub-second part of an epoch-millisecond value.
// Floor division keeps pre-epoch instants inside the same formatted second.
func wholeSeconds(ms int64) int64 {
	sec := ms / 1000
	if ms%1000 < 0 {
		sec--
	}
	return sec
}
