package availability

import (
	"time"
)

// GenerateSlots turns a weekly availability template plus existing blocked
// intervals into the concrete bookable units for a rolling window.
//
// The window covers windowDays consecutive calendar days starting at the UTC
// date of windowStart. Each configured range is cut into units of granularity;
// a trailing remainder shorter than granularity is dropped. Units that
// intersect any blocked interval are emitted with Available=false rather than
// omitted, so callers can render them as booked.
//
// The function is deterministic: identical inputs yield an identical,
// chronologically ordered slice.
func GenerateSlots(
	template WeeklyAvailability,
	blocked []Interval,
	windowStart time.Time,
	windowDays int,
	granularity time.Duration,
	tutorID string,
) []BookingSlot {
	if granularity < time.Minute || windowDays <= 0 {
		return nil
	}
	step := ClockTime(granularity / time.Minute)

	y, mo, d := windowStart.UTC().Date()
	firstDay := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	var slots []BookingSlot
	for i := 0; i < windowDays; i++ {
		day := firstDay.AddDate(0, 0, i)
		ranges := template[day.Weekday()]

		for _, r := range ranges {
			for unitStart := r.Start; unitStart+step <= r.End; unitStart += step {
				slot := BookingSlot{
					TutorID: tutorID,
					Day:     day,
					Start:   unitStart,
					End:     unitStart + step,
				}
				slot.Available = !isBlocked(slot.StartTime(), slot.EndTime(), blocked)
				slots = append(slots, slot)
			}
		}
	}

	return slots
}

// isBlocked reports whether [start, end) intersects any blocked interval.
// Overlapping blocked intervals are fine; they act as a union of blocked time.
func isBlocked(start, end time.Time, blocked []Interval) bool {
	for _, iv := range blocked {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// Covers reports whether [start, end) lies entirely within the template's
// configured availability for that day. Contiguous ranges are merged first, so
// an interval spanning "09:00-10:00" and "10:00-12:00" is covered. Intervals
// crossing a day boundary are never covered; sessions are within-day.
func Covers(template WeeklyAvailability, start, end time.Time) bool {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return false
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Add(-time.Nanosecond).Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}

	startMin := ClockTime(start.Hour()*60 + start.Minute())
	endMin := ClockTime(end.Hour()*60 + end.Minute())
	if end.Second() > 0 || end.Nanosecond() > 0 {
		endMin++
	}

	for _, r := range mergeRanges(template[start.Weekday()]) {
		if r.Start <= startMin && endMin <= r.End {
			return true
		}
	}
	return false
}

// mergeRanges merges sorted, touching or overlapping ranges into maximal runs.
func mergeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}

	merged := []TimeRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
