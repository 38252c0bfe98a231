package http

import (
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/payment"
)

type IntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount_cents"`
}

func NewIntentResponse(i *payment.Intent) IntentResponse {
	return IntentResponse{
		IntentID:     i.ID,
		ClientSecret: i.ClientSecret,
		Status:       i.Status,
		AmountCents:  i.AmountCents,
	}
}
