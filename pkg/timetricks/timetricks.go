package timetricks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dayFormat = "20060102"

// ErrBadInstant is returned for timestamps that are not ISO-8601.
var ErrBadInstant = errors.New("not an ISO-8601 timestamp")

// Layouts without a zone are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant reads an ISO-8601 timestamp. Timestamps with a Z or an explicit
// offset are honored, naive timestamps are taken to be UTC. The result is
// always in UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	// Python style offsets without a colon, and a space instead of T.
	for _, layout := range []string{"2006-01-02T15:04:05.999999999Z0700", "2006-01-02 15:04:05.999999999Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadInstant, s)
}

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// TrimClock returns local midnight on t's calendar day.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Days returns the number of calendar days touched by [start, start+d].
func Days(start time.Time, d time.Duration) int {
	end := start.Add(d)
	n := 1
	for cur := TrimClock(start).AddDate(0, 0, 1); !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		n++
	}
	return n
}
