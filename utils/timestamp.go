package utils

import (
	"time"
)

// TimestampLayout is the stored form of every note timestamp: ISO-8601 with
// microseconds and an explicit numeric offset (never a bare "Z").
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Accepted ISO-8601 shapes, most specific first. Layouts without an offset
// are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp as sent by browsers and by
// this service. A trailing "Z" is the same as "+00:00".
func ParseTimestamp(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// NormalizeTimestamp returns the parsed value, or the current UTC time when
// the value cannot be parsed. It never fails.
func NormalizeTimestamp(value string) time.Time {
	t, err := ParseTimestamp(value)
	if err != nil {
		return NowUTC()
	}
	return t
}

// FormatTimestamp renders t in the stored form, keeping its offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// NowUTC is the clock used for created_at/updated_at. Tests may replace it.
var NowUTC = func() time.Time {
	return time.Now().UTC()
}
