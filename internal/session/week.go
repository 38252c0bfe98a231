package session

import "time"

// weekWindow returns the calendar week containing t as a half-open
// [start, end) range: Sunday 00:00:00 UTC through the following Sunday.
// The weekly session cap counts non-cancelled sessions starting inside
// this window.
func weekWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
