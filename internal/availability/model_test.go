package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:00", 9 * 60, false},
		{"09:00:00", 9 * 60, false},
		{"23:59", 23*60 + 59, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"-1:00", 0, true},
		{"junk", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "09:05", ClockTime(9*60+5).String())
	assert.Equal(t, "00:00", ClockTime(0).String())
	assert.Equal(t, "23:59", ClockTime(23*60+59).String())
}

func TestClockTimeAt(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	got := ClockTime(9*60 + 30).At(day)
	assert.Equal(t, time.Date(2026, 2, 9, 9, 30, 0, 0, time.UTC), got)
}

func TestWeeklyAvailabilityNormalize(t *testing.T) {
	t.Run("sorts ranges within a day", func(t *testing.T) {
		w := WeeklyAvailability{
			time.Monday: {
				{Start: 14 * 60, End: 16 * 60},
				{Start: 9 * 60, End: 11 * 60},
			},
		}
		require.NoError(t, w.Normalize())
		assert.Equal(t, ClockTime(9*60), w[time.Monday][0].Start)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		w := WeeklyAvailability{
			time.Monday: {{Start: 11 * 60, End: 9 * 60}},
		}
		assert.ErrorIs(t, w.Normalize(), ErrInvalidTimeRange)
	})

	t.Run("rejects empty range", func(t *testing.T) {
		w := WeeklyAvailability{
			time.Monday: {{Start: 9 * 60, End: 9 * 60}},
		}
		assert.ErrorIs(t, w.Normalize(), ErrInvalidTimeRange)
	})

	t.Run("rejects overlapping ranges", func(t *testing.T) {
		w := WeeklyAvailability{
			time.Monday: {
				{Start: 9 * 60, End: 11 * 60},
				{Start: 10 * 60, End: 12 * 60},
			},
		}
		assert.ErrorIs(t, w.Normalize(), ErrOverlappingRanges)
	})

	t.Run("touching ranges are fine", func(t *testing.T) {
		w := WeeklyAvailability{
			time.Monday: {
				{Start: 9 * 60, End: 11 * 60},
				{Start: 11 * 60, End: 12 * 60},
			},
		}
		assert.NoError(t, w.Normalize())
	})
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("monday")
	require.True(t, ok)
	assert.Equal(t, time.Monday, d)

	_, ok = ParseWeekday("Monday")
	assert.False(t, ok)

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := WeekdayName(wd)
		parsed, ok := ParseWeekday(name)
		require.True(t, ok)
		assert.Equal(t, wd, parsed)
	}
}
