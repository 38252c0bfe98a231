package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2026-02-09 is a Monday.
var monday = time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

const tutorID = "tutor-1"

func mondayTemplate(ranges ...TimeRange) WeeklyAvailability {
	return WeeklyAvailability{time.Monday: ranges}
}

func TestGenerateSlots(t *testing.T) {
	nineToEleven := TimeRange{Start: 9 * 60, End: 11 * 60}

	tests := []struct {
		name        string
		template    WeeklyAvailability
		blocked     []Interval
		windowStart time.Time
		windowDays  int
		granularity time.Duration
		want        []BookingSlot
	}{
		{
			name:        "no bookings, one range splits into hourly units",
			template:    mondayTemplate(nineToEleven),
			windowStart: monday,
			windowDays:  1,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: true},
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: true},
			},
		},
		{
			name:     "booked session marks overlapping unit unavailable",
			template: mondayTemplate(nineToEleven),
			blocked: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
			},
			windowStart: monday,
			windowDays:  1,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: false},
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: true},
			},
		},
		{
			name:     "partial overlap blocks the unit",
			template: mondayTemplate(nineToEleven),
			blocked: []Interval{
				{Start: monday.Add(9*time.Hour + 30*time.Minute), End: monday.Add(10*time.Hour + 30*time.Minute)},
			},
			windowStart: monday,
			windowDays:  1,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: false},
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: false},
			},
		},
		{
			name:     "overlapping booked sessions act as a union of blocked time",
			template: mondayTemplate(nineToEleven),
			blocked: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
				{Start: monday.Add(9*time.Hour + 15*time.Minute), End: monday.Add(9*time.Hour + 45*time.Minute)},
			},
			windowStart: monday,
			windowDays:  1,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: false},
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: true},
			},
		},
		{
			name:        "empty template yields no slots",
			template:    WeeklyAvailability{},
			windowStart: monday,
			windowDays:  7,
			granularity: time.Hour,
			want:        nil,
		},
		{
			name:        "days without entries contribute zero slots",
			template:    mondayTemplate(nineToEleven),
			windowStart: monday,
			windowDays:  7,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: true},
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: true},
			},
		},
		{
			name:        "remainder shorter than granularity is dropped",
			template:    mondayTemplate(TimeRange{Start: 9 * 60, End: 10*60 + 30}),
			windowStart: monday,
			windowDays:  1,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 9 * 60, End: 10 * 60, Available: true},
			},
		},
		{
			name: "multiple days emit in chronological order",
			template: WeeklyAvailability{
				time.Monday:  {TimeRange{Start: 10 * 60, End: 11 * 60}},
				time.Tuesday: {TimeRange{Start: 8 * 60, End: 9 * 60}},
			},
			windowStart: monday,
			windowDays:  2,
			granularity: time.Hour,
			want: []BookingSlot{
				{TutorID: tutorID, Day: monday, Start: 10 * 60, End: 11 * 60, Available: true},
				{TutorID: tutorID, Day: monday.AddDate(0, 0, 1), Start: 8 * 60, End: 9 * 60, Available: true},
			},
		},
		{
			name:        "zero granularity yields nothing",
			template:    mondayTemplate(nineToEleven),
			windowStart: monday,
			windowDays:  1,
			granularity: 0,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.template, tt.blocked, tt.windowStart, tt.windowDays, tt.granularity, tutorID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateSlots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	template := WeeklyAvailability{
		time.Monday:    {TimeRange{Start: 9 * 60, End: 12 * 60}},
		time.Wednesday: {TimeRange{Start: 14 * 60, End: 16 * 60}},
	}
	blocked := []Interval{
		{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
	}

	first := GenerateSlots(template, blocked, monday, 7, time.Hour, tutorID)
	second := GenerateSlots(template, blocked, monday, 7, time.Hour, tutorID)

	require.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		require.True(t, first[i-1].StartTime().Before(first[i].StartTime()),
			"slots must be in ascending chronological order")
	}
}

func TestCovers(t *testing.T) {
	template := WeeklyAvailability{
		time.Monday: {
			TimeRange{Start: 9 * 60, End: 10 * 60},
			TimeRange{Start: 10 * 60, End: 12 * 60},
			TimeRange{Start: 14 * 60, End: 16 * 60},
		},
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside single range", monday.Add(9 * time.Hour), monday.Add(10 * time.Hour), true},
		{"spans contiguous ranges", monday.Add(9 * time.Hour), monday.Add(12 * time.Hour), true},
		{"spans the gap", monday.Add(11 * time.Hour), monday.Add(15 * time.Hour), false},
		{"outside availability", monday.Add(7 * time.Hour), monday.Add(8 * time.Hour), false},
		{"day with no entries", monday.AddDate(0, 0, 1).Add(9 * time.Hour), monday.AddDate(0, 0, 1).Add(10 * time.Hour), false},
		{"inverted interval", monday.Add(10 * time.Hour), monday.Add(9 * time.Hour), false},
		{"crosses midnight", monday.Add(15 * time.Hour), monday.Add(25 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Covers(template, tt.start, tt.end))
		})
	}
}
