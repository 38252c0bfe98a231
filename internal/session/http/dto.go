package http

import (
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/request"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/session"
	tutorHttp "github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor/http"
)

// ListSessionsRequest defines query parameters for listing sessions.
type ListSessionsRequest struct {
	request.ListParams
	Status        string     `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListSessionsRequest.
func (r *ListSessionsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return session.ErrInvalidTimeRange
		}
	}
	return nil
}

type SessionResponse struct {
	ID            string             `json:"id"`
	Tutor         tutorHttp.TutorTag `json:"tutor"`
	StudentID     string             `json:"student_id"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	CourseID      *string            `json:"course_id,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func NewSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		Tutor:         tutorHttp.TutorTag{ID: s.TutorID, Name: s.TutorName},
		StudentID:     s.StudentID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		CourseID:      s.CourseID,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

type BookSessionRequest struct {
	TutorID   string    `json:"tutor_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	CourseID  *string   `json:"course_id"`
	Notes     *string   `json:"notes"`
}

// Validate performs custom validation for BookSessionRequest.
func (r *BookSessionRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return session.ErrInvalidTimeRange
	}
	if r.StartTime.Before(time.Now().UTC()) {
		return session.ErrStartTimePast
	}
	return nil
}

type RescheduleRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for RescheduleRequest.
func (r *RescheduleRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return session.ErrInvalidTimeRange
	}
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled"`
}
