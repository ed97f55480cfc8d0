package utils

import (
	"fmt"
	"time"
)

// FormatLocal returns the provided time formatted in the machine's local
// time.
func FormatLocal(t time.Time) string {
	return t.In(time.Local).Format(time.RFC1123)
}

// FormatClock renders a number of seconds as m:ss, so 95 becomes "1:35".
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatDuration renders a duration between two timestamps as "1h 23m".
func FormatDuration(from, to time.Time) string {
	d := to.Sub(from).Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// ParseDay accepts DD/MM/YY or YYYY-MM-DD and returns midnight of that day
// in local time.
func ParseDay(s string) (time.Time, error) {
	for _, layout := range []string{"02/01/06", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected DD/MM/YY or YYYY-MM-DD)", s)
}

// DayBounds returns the [start, end) window of the day containing t, in
// local time.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}
