package payment

import (
	"net/http"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
)

var (
	ErrRateLimited         = apperror.New(http.StatusTooManyRequests, "payment request throttled, retry later")
	ErrDuplicateRequest    = apperror.New(http.StatusConflict, "a payment request for this session is already in flight")
	ErrAlreadyProcessing   = apperror.New(http.StatusConflict, "another payment request is in progress")
	ErrNotPayable          = apperror.New(http.StatusConflict, "session is not payable")
	ErrAlreadyPaid         = apperror.New(http.StatusConflict, "session is already paid")
	ErrProviderUnavailable = apperror.New(http.StatusBadGateway, "payment provider unavailable")
)

// IntentRequest is what the provider needs to create a payment intent.
type IntentRequest struct {
	SessionID   string
	TutorID     string
	StudentID   string
	AmountCents int64
	Currency    string
}

// Intent is the provider-side payment intent the client confirms.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
}
