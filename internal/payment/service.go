package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/session"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

// SessionStore is the slice of the session service the payment flow needs.
type SessionStore interface {
	GetByID(ctx context.Context, id string, actorID string) (*session.Session, error)
	SetPaymentStatus(ctx context.Context, id string, status session.PaymentStatus) error
}

// TutorStore provides the rate used to price a session.
type TutorStore interface {
	GetByID(ctx context.Context, id string) (*tutor.Tutor, error)
}

type Service interface {
	// CreateIntent creates (or idempotently re-fetches) the provider payment
	// intent for a session. The in-process guard throttles rapid duplicate
	// submissions; the provider idempotency key is the real safety net.
	CreateIntent(ctx context.Context, sessionID string, actorID string) (*Intent, error)
}

type service struct {
	guard    *Guard
	creator  IntentCreator
	sessions SessionStore
	tutors   TutorStore
	logger   *zap.Logger
}

func NewService(guard *Guard, creator IntentCreator, sessions SessionStore, tutors TutorStore, logger *zap.Logger) Service {
	return &service{
		guard:    guard,
		creator:  creator,
		sessions: sessions,
		tutors:   tutors,
		logger:   logger,
	}
}

func (s *service) CreateIntent(ctx context.Context, sessionID string, actorID string) (*Intent, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}

	// Only the student on the session pays for it.
	if actorID != sess.StudentID {
		return nil, session.ErrPermissionDenied
	}

	if sess.Status != session.StatusScheduled {
		return nil, ErrNotPayable
	}
	switch sess.PaymentStatus {
	case session.PaymentPaid:
		return nil, ErrAlreadyPaid
	case session.PaymentUnpaid, session.PaymentProcessing:
		// processing is retryable: the idempotency key returns the same
		// intent rather than creating a new charge.
	default:
		return nil, ErrNotPayable
	}

	release, err := s.guard.Begin(sessionID)
	if err != nil {
		s.logger.Warn("payment intent request throttled",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, err
	}
	defer release()

	t, err := s.tutors.GetByID(ctx, sess.TutorID)
	if err != nil {
		return nil, err
	}

	minutes := int64(sess.EndTime.Sub(sess.StartTime).Minutes())
	req := IntentRequest{
		SessionID:   sessionID,
		TutorID:     sess.TutorID,
		StudentID:   sess.StudentID,
		AmountCents: t.HourlyRateCents * minutes / 60,
		Currency:    "usd",
	}

	intent, err := s.creator.CreateIntent(ctx, req)
	if err != nil {
		s.logger.Error("payment provider call failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, ErrProviderUnavailable
	}

	// A failed status write must not lose the intent: the client can still
	// confirm it, and the webhook flow reconciles payment status later.
	if err := s.sessions.SetPaymentStatus(ctx, sessionID, session.PaymentProcessing); err != nil {
		s.logger.Warn("failed to mark session payment processing",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("payment intent created",
		zap.String("session_id", sessionID),
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_cents", req.AmountCents))

	return intent, nil
}
