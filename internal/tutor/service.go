package tutor

import (
	"context"
)

// UpdateSettingsRequest carries the booking-related settings a tutor can
// change. Nil fields are left untouched; ClearWeeklyCap removes the cap.
type UpdateSettingsRequest struct {
	HourlyRateCents   *int64
	MaxWeeklySessions *int
	ClearWeeklyCap    bool
}

type Service interface {
	GetByID(ctx context.Context, id string) (*Tutor, error)
	// MaxWeeklySessions returns the tutor's configured cap, or nil if the
	// tutor is uncapped.
	MaxWeeklySessions(ctx context.Context, id string) (*int, error)
	UpdateSettings(ctx context.Context, id string, req UpdateSettingsRequest, actorID string) (*Tutor, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*Tutor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) MaxWeeklySessions(ctx context.Context, id string) (*int, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.MaxWeeklySessions, nil
}

func (s *service) UpdateSettings(ctx context.Context, id string, req UpdateSettingsRequest, actorID string) (*Tutor, error) {
	// Only the tutor themself may change booking settings.
	if actorID != id {
		return nil, ErrPermissionDenied
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents <= 0 {
			return nil, ErrInvalidRate
		}
		t.HourlyRateCents = *req.HourlyRateCents
	}

	if req.ClearWeeklyCap {
		t.MaxWeeklySessions = nil
	} else if req.MaxWeeklySessions != nil {
		if *req.MaxWeeklySessions <= 0 {
			return nil, ErrInvalidCap
		}
		cap := *req.MaxWeeklySessions
		t.MaxWeeklySessions = &cap
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}
