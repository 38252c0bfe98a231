package tutor

import (
	"net/http"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "tutor not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidRate      = apperror.New(http.StatusBadRequest, "hourly rate must be positive")
	ErrInvalidCap       = apperror.New(http.StatusBadRequest, "weekly session cap must be positive")
)

// Tutor is the slice of a tutor's profile the booking core depends on.
// Bio, subjects, reviews and the rest of the profile live in other services.
type Tutor struct {
	ID              string
	DisplayName     string
	HourlyRateCents int64

	// MaxWeeklySessions caps how many sessions a tutor takes per calendar
	// week. nil means no cap.
	MaxWeeklySessions *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
