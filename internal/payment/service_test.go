package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/session"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

type fakeSessions struct {
	sess *session.Session

	setStatusErr  error
	statusUpdates []session.PaymentStatus
}

func (f *fakeSessions) GetByID(_ context.Context, id string, actorID string) (*session.Session, error) {
	if f.sess == nil || f.sess.ID != id {
		return nil, session.ErrNotFound
	}
	if actorID != f.sess.StudentID && actorID != f.sess.TutorID {
		return nil, session.ErrPermissionDenied
	}
	cp := *f.sess
	return &cp, nil
}

func (f *fakeSessions) SetPaymentStatus(_ context.Context, _ string, status session.PaymentStatus) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

type fakeTutorStore struct {
	tutor *tutor.Tutor
}

func (f *fakeTutorStore) GetByID(_ context.Context, id string) (*tutor.Tutor, error) {
	if f.tutor == nil || f.tutor.ID != id {
		return nil, tutor.ErrNotFound
	}
	return f.tutor, nil
}

type fakeCreator struct {
	err      error
	requests []IntentRequest
}

func (f *fakeCreator) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &Intent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Status:       "requires_payment_method",
		AmountCents:  req.AmountCents,
	}, nil
}

type paymentFixture struct {
	svc      Service
	clk      *fakeClock
	sessions *fakeSessions
	creator  *fakeCreator
}

func newPaymentFixture(sess *session.Session) *paymentFixture {
	g, clk := newTestGuard()
	sessions := &fakeSessions{sess: sess}
	tutors := &fakeTutorStore{tutor: &tutor.Tutor{
		ID:              "tutor-1",
		DisplayName:     "Alex",
		HourlyRateCents: 4000,
	}}
	creator := &fakeCreator{}

	return &paymentFixture{
		svc:      NewService(g, creator, sessions, tutors, zap.NewNop()),
		clk:      clk,
		sessions: sessions,
		creator:  creator,
	}
}

func scheduledSession(paymentStatus session.PaymentStatus) *session.Session {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &session.Session{
		ID:            "sess-1",
		TutorID:       "tutor-1",
		StudentID:     "student-1",
		StartTime:     start,
		EndTime:       start.Add(90 * time.Minute),
		Status:        session.StatusScheduled,
		PaymentStatus: paymentStatus,
	}
}

func TestCreateIntent(t *testing.T) {
	t.Run("prices by duration and marks processing", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))

		intent, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		require.NoError(t, err)
		assert.Equal(t, "pi_test", intent.ID)
		assert.NotEmpty(t, intent.ClientSecret)

		// 90 minutes at 4000 cents per hour.
		require.Len(t, f.creator.requests, 1)
		req := f.creator.requests[0]
		assert.Equal(t, int64(6000), req.AmountCents)
		assert.Equal(t, "usd", req.Currency)
		assert.Equal(t, "sess-1", req.SessionID)

		assert.Equal(t, []session.PaymentStatus{session.PaymentProcessing}, f.sessions.statusUpdates)
	})

	t.Run("only the student pays", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "tutor-1")
		assert.ErrorIs(t, err, session.ErrPermissionDenied)
		assert.Empty(t, f.creator.requests)
	})

	t.Run("already paid", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentPaid))

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("processing retries are allowed through to the provider", func(t *testing.T) {
		// The idempotency key makes the provider return the original intent.
		f := newPaymentFixture(scheduledSession(session.PaymentProcessing))

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		require.NoError(t, err)
		require.Len(t, f.creator.requests, 1)
	})

	t.Run("cancelled session is not payable", func(t *testing.T) {
		sess := scheduledSession(session.PaymentUnpaid)
		sess.Status = session.StatusCancelled
		f := newPaymentFixture(sess)

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		assert.ErrorIs(t, err, ErrNotPayable)
	})

	t.Run("provider failure releases the hold", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))
		f.creator.err = errors.New("stripe: timeout")

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.Empty(t, f.sessions.statusUpdates)

		// The hold was released on the failure path: a well-spaced retry
		// reaches the provider again instead of tripping the duplicate guard.
		f.creator.err = nil
		f.clk.advance(3 * time.Second)
		_, err = f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		assert.NoError(t, err)
	})

	t.Run("rapid retry is throttled", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))

		_, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		require.NoError(t, err)

		f.clk.advance(time.Second)
		_, err = f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		assert.ErrorIs(t, err, ErrRateLimited)
		require.Len(t, f.creator.requests, 1)
	})

	t.Run("status write failure does not lose the intent", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))
		f.sessions.setStatusErr = errors.New("connection refused")

		intent, err := f.svc.CreateIntent(context.Background(), "sess-1", "student-1")
		require.NoError(t, err)
		assert.Equal(t, "pi_test", intent.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newPaymentFixture(scheduledSession(session.PaymentUnpaid))

		_, err := f.svc.CreateIntent(context.Background(), "nope", "student-1")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}
