package http

import (
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

// TutorTag is the compact tutor reference embedded in other responses.
type TutorTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TutorResponse struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	HourlyRateCents   int64     `json:"hourly_rate_cents"`
	MaxWeeklySessions *int      `json:"max_weekly_sessions"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewTutorResponse(t *tutor.Tutor) TutorResponse {
	return TutorResponse{
		ID:                t.ID,
		DisplayName:       t.DisplayName,
		HourlyRateCents:   t.HourlyRateCents,
		MaxWeeklySessions: t.MaxWeeklySessions,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type UpdateSettingsRequest struct {
	HourlyRateCents   *int64 `json:"hourly_rate_cents" binding:"omitempty,gt=0"`
	MaxWeeklySessions *int   `json:"max_weekly_sessions" binding:"omitempty,gt=0"`
	ClearWeeklyCap    bool   `json:"clear_weekly_cap"`
}
