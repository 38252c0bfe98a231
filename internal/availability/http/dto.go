package http

import (
	"time"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
)

// TimeRangeDTO is one availability range within a day, e.g. {"start":"09:00","end":"11:00"}.
type TimeRangeDTO struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// TemplateRequest is the full weekly template keyed by lowercase day name.
// Days omitted from the map have no availability.
type TemplateRequest map[string][]TimeRangeDTO

// ToDomain converts the request into a WeeklyAvailability, rejecting unknown
// day names and malformed clock times.
func (r TemplateRequest) ToDomain() (availability.WeeklyAvailability, error) {
	template := availability.WeeklyAvailability{}
	for dayName, ranges := range r {
		day, ok := availability.ParseWeekday(dayName)
		if !ok {
			return nil, availability.ErrInvalidWeekday
		}
		for _, tr := range ranges {
			start, err := availability.ParseClockTime(tr.Start)
			if err != nil {
				return nil, err
			}
			end, err := availability.ParseClockTime(tr.End)
			if err != nil {
				return nil, err
			}
			template[day] = append(template[day], availability.TimeRange{Start: start, End: end})
		}
	}
	return template, nil
}

// NewTemplateResponse renders a WeeklyAvailability back to the JSON shape.
func NewTemplateResponse(template availability.WeeklyAvailability) TemplateRequest {
	resp := TemplateRequest{}
	for day, ranges := range template {
		dtos := make([]TimeRangeDTO, len(ranges))
		for i, tr := range ranges {
			dtos[i] = TimeRangeDTO{Start: tr.Start.String(), End: tr.End.String()}
		}
		resp[availability.WeekdayName(day)] = dtos
	}
	return resp
}

type SlotResponse struct {
	TutorID   string `json:"tutor_id"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type ScheduleResponse struct {
	Slots       []SlotResponse `json:"slots"`
	HasTemplate bool           `json:"has_template"`
	FullyBooked bool           `json:"fully_booked"`
}

func NewScheduleResponse(s *availability.Schedule) ScheduleResponse {
	slots := make([]SlotResponse, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = SlotResponse{
			TutorID:   slot.TutorID,
			Day:       slot.Day.Format("2006-01-02"),
			Start:     slot.Start.String(),
			End:       slot.End.String(),
			Available: slot.Available,
		}
	}
	return ScheduleResponse{
		Slots:       slots,
		HasTemplate: s.HasTemplate,
		FullyBooked: s.FullyBooked,
	}
}

// ScheduleQuery holds the query parameters for a schedule window.
type ScheduleQuery struct {
	From        time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	Days        int       `form:"days" binding:"omitempty,min=1,max=60"`
	Granularity int       `form:"granularity" binding:"omitempty,min=15,max=480"`
}
