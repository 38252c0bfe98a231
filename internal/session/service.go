package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

// BookRequest carries the inputs of a booking commit.
type BookRequest struct {
	TutorID   string
	StudentID string
	StartTime time.Time
	EndTime   time.Time
	CourseID  *string
	Notes     *string
}

type Service interface {
	// Book runs the booking commit protocol: re-validate the weekly limit
	// and the slot against current data, then insert under the store's
	// exclusion constraint. A conflicting concurrent booking surfaces as
	// ErrSlotConflict and is never retried here; the caller re-fetches
	// availability and asks the user to pick again.
	Book(ctx context.Context, req BookRequest) (*Session, error)

	// Reschedule validates the new interval against the tutor's template and
	// existing sessions (excluding the session being moved) and atomically
	// updates the time bounds under the same exclusion constraint.
	Reschedule(ctx context.Context, id string, start, end time.Time, actorID string) (*Session, error)

	// IsAtWeeklyLimit reports whether a booking starting on proposedDate
	// would exceed the tutor's weekly cap. Advisory at read time; Book
	// re-checks before the write.
	IsAtWeeklyLimit(ctx context.Context, tutorID string, proposedDate time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id string, status Status, actorID string) (*Session, error)
	SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) error
	GetByID(ctx context.Context, id string, actorID string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
}

type service struct {
	repo      Repository
	templates availability.Repository
	tutors    tutor.Service
}

func NewService(repo Repository, templates availability.Repository, tutors tutor.Service) Service {
	return &service{
		repo:      repo,
		templates: templates,
		tutors:    tutors,
	}
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Session, error) {
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.tutors.GetByID(ctx, req.TutorID); err != nil {
		if errors.Is(err, tutor.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	// Weekly limit re-check immediately before the write; the advisory check
	// at slot-generation time may be stale by now.
	atLimit, err := s.IsAtWeeklyLimit(ctx, req.TutorID, req.StartTime)
	if err != nil {
		return nil, err
	}
	if atLimit {
		return nil, ErrWeeklyLimitExceeded
	}

	if err := s.checkSlot(ctx, req.TutorID, req.StartTime, req.EndTime, ""); err != nil {
		return nil, err
	}

	sess := &Session{
		TutorID:       req.TutorID,
		StudentID:     req.StudentID,
		StartTime:     req.StartTime.UTC(),
		EndTime:       req.EndTime.UTC(),
		Status:        StatusScheduled,
		PaymentStatus: PaymentUnpaid,
		CourseID:      req.CourseID,
		Notes:         req.Notes,
	}

	// The insert races against concurrent bookings; the exclusion constraint
	// decides, and the loser gets ErrSlotConflict from the repository.
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *service) Reschedule(ctx context.Context, id string, start, end time.Time, actorID string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorID != sess.StudentID && actorID != sess.TutorID {
		return nil, ErrPermissionDenied
	}
	if sess.Status != StatusScheduled {
		return nil, ErrNotReschedulable
	}

	if err := validateInterval(start, end); err != nil {
		return nil, err
	}

	if err := s.checkSlot(ctx, sess.TutorID, start, end, sess.ID); err != nil {
		return nil, err
	}

	return s.repo.UpdateTime(ctx, id, start.UTC(), end.UTC())
}

func (s *service) IsAtWeeklyLimit(ctx context.Context, tutorID string, proposedDate time.Time) (bool, error) {
	limit, err := s.tutors.MaxWeeklySessions(ctx, tutorID)
	if err != nil {
		if errors.Is(err, tutor.ErrNotFound) {
			return false, ErrTutorNotFound
		}
		return false, err
	}
	if limit == nil {
		// No configured limit means unlimited.
		return false, nil
	}

	weekStart, weekEnd := weekWindow(proposedDate)
	count, err := s.repo.CountForTutorBetween(ctx, tutorID, weekStart, weekEnd)
	if err != nil {
		return false, err
	}

	return count >= *limit, nil
}

// checkSlot re-validates a candidate interval against the tutor's current
// template and sessions. The overlap portion is advisory; the exclusion
// constraint remains the authority under concurrency.
func (s *service) checkSlot(ctx context.Context, tutorID string, start, end time.Time, excludeID string) error {
	template, err := s.templates.GetTemplate(ctx, tutorID)
	if err != nil {
		return apperror.Wrap(err, http.StatusBadGateway, availability.ErrUpstream.Message)
	}
	if len(template) == 0 {
		return availability.ErrNoAvailability
	}
	if !availability.Covers(template, start, end) {
		return ErrOutsideAvailability
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, tutorID, start, end, excludeID)
	if err != nil {
		return err
	}
	if hasOverlap {
		return ErrSlotConflict
	}
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, actorID string) (*Session, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actorID {
	case sess.StudentID:
		// Students may only cancel their own sessions.
		if status != StatusCancelled {
			return nil, ErrPermissionDenied
		}
	case sess.TutorID:
		// Tutors may complete or cancel.
	default:
		return nil, ErrPermissionDenied
	}

	if !CanTransition(sess.Status, status) {
		return nil, ErrStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	sess.Status = status
	return sess, nil
}

func (s *service) SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

func (s *service) GetByID(ctx context.Context, id string, actorID string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != sess.StudentID && actorID != sess.TutorID {
		return nil, ErrPermissionDenied
	}
	return sess, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	return s.repo.List(ctx, filter)
}

func validateInterval(start, end time.Time) error {
	if end.Before(start) || end.Equal(start) {
		return ErrInvalidTimeRange
	}
	if start.Before(time.Now().UTC()) {
		return ErrStartTimePast
	}
	return nil
}
