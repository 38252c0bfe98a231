package session

import (
	"net/http"
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "session not found")
	ErrSlotConflict        = apperror.New(http.StatusConflict, "time slot already booked")
	ErrWeeklyLimitExceeded = apperror.New(http.StatusConflict, "tutor's weekly session limit reached")
	ErrOutsideAvailability = apperror.New(http.StatusConflict, "requested time is outside the tutor's availability")
	ErrInvalidTimeRange    = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "cannot book a session in the past")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid session status")
	ErrStatusTransition    = apperror.New(http.StatusConflict, "session status can only move forward")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrTutorNotFound       = apperror.New(http.StatusNotFound, "tutor not found")
	ErrNotReschedulable    = apperror.New(http.StatusConflict, "only scheduled sessions can be rescheduled")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known session status.
func ValidStatus(s Status) bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether a status change is allowed. Transitions are
// forward-only: scheduled -> completed | cancelled. Sessions are never
// deleted; cancellation is the terminal "removed" state and keeps the row as
// an audit trail.
func CanTransition(from, to Status) bool {
	return from == StatusScheduled && (to == StatusCompleted || to == StatusCancelled)
}

type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "unpaid"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Session is a confirmed booking between a student and a tutor.
// The persistence layer enforces that no two non-cancelled sessions for the
// same tutor overlap; application code never relies on check-then-insert.
type Session struct {
	ID            string
	TutorID       string
	TutorName     string
	StudentID     string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	PaymentStatus PaymentStatus
	CourseID      *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	TutorID   string
	StudentID string
	Status    string
	StartTime *time.Time // Sessions ending after this time
	EndTime   *time.Time // Sessions starting before this time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
