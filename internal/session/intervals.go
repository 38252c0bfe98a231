package session

import (
	"context"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
)

// intervalSource adapts the session repository to the slot generator's
// blocked-time interface. The repository already filters out cancelled
// sessions, so cancelled sessions never reduce availability.
type intervalSource struct {
	repo Repository
}

// NewIntervalSource exposes booked sessions as blocked intervals for the
// availability module.
func NewIntervalSource(repo Repository) availability.IntervalSource {
	return &intervalSource{repo: repo}
}

func (s *intervalSource) BlockedIntervals(ctx context.Context, tutorID string, from, to time.Time) ([]availability.Interval, error) {
	sessions, err := s.repo.ListForTutor(ctx, tutorID, from, to)
	if err != nil {
		return nil, err
	}

	intervals := make([]availability.Interval, len(sessions))
	for i, sess := range sessions {
		intervals[i] = availability.Interval{Start: sess.StartTime, End: sess.EndTime}
	}
	return intervals, nil
}
