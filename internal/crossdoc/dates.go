package crossdoc

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006.01.02",
	"2006. 1. 2.",
	"2006. 1. 2",
	"2006/01/02",
	"2006.1.2",
	"2006년 1월 2일",
}

// ParseInspectionDate reads the date formats seen on inspection forms.
// The result is truncated to the calendar day in UTC.
func ParseInspectionDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// daysBetween returns whole calendar days from a to b
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
