package availability

import (
	"context"
	"net/http"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
)

var errPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")

// IntervalSource supplies the blocked time that makes generated slots
// unavailable. In production this is backed by the session repository;
// cancelled sessions must not be reported.
type IntervalSource interface {
	BlockedIntervals(ctx context.Context, tutorID string, from, to time.Time) ([]Interval, error)
}

// Schedule is the result of a schedule query. HasTemplate distinguishes a
// tutor who never configured availability from one whose window is simply
// full; absence of slots alone cannot tell the two apart.
type Schedule struct {
	Slots       []BookingSlot
	HasTemplate bool
	FullyBooked bool
}

type Service interface {
	GetTemplate(ctx context.Context, tutorID string) (WeeklyAvailability, error)
	SetTemplate(ctx context.Context, tutorID string, template WeeklyAvailability, actorID string) error

	// GetSchedule generates the bookable slots for a rolling window starting
	// at from. If loading booked sessions fails the whole query fails; it
	// must never degrade to reporting everything available.
	GetSchedule(ctx context.Context, tutorID string, from time.Time, days int, granularity time.Duration) (*Schedule, error)
}

type service struct {
	repo     Repository
	sessions IntervalSource
}

func NewService(repo Repository, sessions IntervalSource) Service {
	return &service{repo: repo, sessions: sessions}
}

func (s *service) GetTemplate(ctx context.Context, tutorID string) (WeeklyAvailability, error) {
	return s.repo.GetTemplate(ctx, tutorID)
}

func (s *service) SetTemplate(ctx context.Context, tutorID string, template WeeklyAvailability, actorID string) error {
	// Availability is owned by the tutor; only an explicit settings action by
	// the owner mutates it.
	if actorID != tutorID {
		return errPermissionDenied
	}

	if err := template.Normalize(); err != nil {
		return err
	}

	return s.repo.ReplaceTemplate(ctx, tutorID, template)
}

func (s *service) GetSchedule(ctx context.Context, tutorID string, from time.Time, days int, granularity time.Duration) (*Schedule, error) {
	if granularity < time.Minute {
		return nil, ErrInvalidGranularity
	}

	template, err := s.repo.GetTemplate(ctx, tutorID)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadGateway, ErrUpstream.Message)
	}

	if len(template) == 0 {
		return &Schedule{Slots: []BookingSlot{}, HasTemplate: false}, nil
	}

	// The generator covers whole calendar days, so the blocked-interval fetch
	// must start at the same midnight or slots earlier in the first day would
	// go unchecked.
	y, m, d := from.UTC().Date()
	windowStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := windowStart.AddDate(0, 0, days)

	blocked, err := s.sessions.BlockedIntervals(ctx, tutorID, windowStart, to)
	if err != nil {
		// An under-blocked slot list would show booked time as free.
		return nil, apperror.Wrap(err, http.StatusBadGateway, ErrUpstream.Message)
	}

	slots := GenerateSlots(template, blocked, windowStart, days, granularity, tutorID)

	fullyBooked := len(slots) > 0
	for _, slot := range slots {
		if slot.Available {
			fullyBooked = false
			break
		}
	}

	return &Schedule{
		Slots:       slots,
		HasTemplate: true,
		FullyBooked: fullyBooked,
	}, nil
}
