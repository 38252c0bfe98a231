package availability

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
)

var (
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "range start must be before end")
	ErrOverlappingRanges  = apperror.New(http.StatusBadRequest, "availability ranges within a day must not overlap")
	ErrInvalidClockTime   = apperror.New(http.StatusBadRequest, "clock time must be in HH:MM format")
	ErrInvalidWeekday     = apperror.New(http.StatusBadRequest, "unknown weekday name")
	ErrInvalidGranularity = apperror.New(http.StatusBadRequest, "granularity must be a positive number of minutes")
	ErrNoAvailability     = apperror.New(http.StatusNotFound, "tutor has no availability configured")
	ErrUpstream           = apperror.New(http.StatusBadGateway, "failed to load booked sessions")
)

// ClockTime is a time of day expressed as minutes since midnight.
// All clock times are interpreted in UTC; mixing zones in slot math is a
// correctness bug, so the zone is fixed system-wide.
type ClockTime int

// ParseClockTime parses "HH:MM" (and tolerates "HH:MM:SS") into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, ErrInvalidClockTime
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClockTime
	}
	return ClockTime(h*60 + m), nil
}

// String formats the clock time back to "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// At anchors the clock time onto the given calendar day in UTC.
func (t ClockTime) At(day time.Time) time.Time {
	y, mo, d := day.UTC().Date()
	return time.Date(y, mo, d, int(t)/60, int(t)%60, 0, 0, time.UTC)
}

// TimeRange is a half-open [Start, End) range within a single day.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// WeeklyAvailability maps weekdays to the tutor's recurring availability
// ranges for that day. A day with no entry contributes no slots.
type WeeklyAvailability map[time.Weekday][]TimeRange

// Normalize sorts each day's ranges by start time and validates that every
// range is well formed and that ranges within a day do not overlap.
func (w WeeklyAvailability) Normalize() error {
	for day, ranges := range w {
		sort.Slice(ranges, func(i, j int) bool {
			return ranges[i].Start < ranges[j].Start
		})
		for i, r := range ranges {
			if r.Start >= r.End {
				return ErrInvalidTimeRange
			}
			if i > 0 && ranges[i-1].End > r.Start {
				return ErrOverlappingRanges
			}
		}
		w[day] = ranges
	}
	return nil
}

// BookingSlot is a derived, ephemeral bookable unit. It is regenerated on
// every schedule query and never persisted; unavailable slots are included so
// callers can render them as booked.
type BookingSlot struct {
	TutorID   string
	Day       time.Time // UTC midnight of the slot's calendar day
	Start     ClockTime
	End       ClockTime
	Available bool
}

// StartTime returns the slot's absolute start timestamp.
func (s BookingSlot) StartTime() time.Time {
	return s.Start.At(s.Day)
}

// EndTime returns the slot's absolute end timestamp.
func (s BookingSlot) EndTime() time.Time {
	return s.End.At(s.Day)
}

// Interval is an absolute blocked time range, typically an existing session.
// Half-open [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && iv.End.After(start)
}

// weekdayNames maps the JSON day keys to time.Weekday values.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a lowercase day name ("monday") to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdayNames[name]
	return d, ok
}

// WeekdayName converts a time.Weekday back to its lowercase JSON key.
func WeekdayName(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}
