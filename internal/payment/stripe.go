package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentCreator abstracts the payment provider so the service can be tested
// with a fake. The production implementation talks to Stripe.
type IntentCreator interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

type stripeCreator struct{}

// NewStripeCreator returns the Stripe-backed IntentCreator. The API key is
// installed process-wide via stripe.Key at startup.
func NewStripeCreator() IntentCreator {
	return &stripeCreator{}
}

func (c *stripeCreator) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"session_id": req.SessionID,
				"tutor_id":   req.TutorID,
				"student_id": req.StudentID,
			},
		},
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
	}
	// The idempotency key is the authoritative duplicate-charge protection:
	// retries for the same session can never create a second charge, no
	// matter how many tabs or replicas raced past the in-process guard.
	params.SetIdempotencyKey("session-intent-" + req.SessionID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe payment intent failed: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
	}, nil
}
