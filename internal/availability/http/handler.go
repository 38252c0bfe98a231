package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/auth"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/response"
)

const (
	defaultWindowDays  = 14
	defaultGranularity = 60 * time.Minute
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetTemplate(c *gin.Context) {
	tutorID := c.Param("id")
	if _, err := uuid.Parse(tutorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	template, err := h.service.GetTemplate(c.Request.Context(), tutorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(template))
}

func (h *Handler) PutTemplate(c *gin.Context) {
	tutorID := c.Param("id")
	if _, err := uuid.Parse(tutorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body TemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	template, err := body.ToDomain()
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.SetTemplate(c.Request.Context(), tutorID, template, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(template))
}

func (h *Handler) GetSchedule(c *gin.Context) {
	tutorID := c.Param("id")
	if _, err := uuid.Parse(tutorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var query ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	days := query.Days
	if days == 0 {
		days = defaultWindowDays
	}
	granularity := defaultGranularity
	if query.Granularity != 0 {
		granularity = time.Duration(query.Granularity) * time.Minute
	}

	schedule, err := h.service.GetSchedule(c.Request.Context(), tutorID, query.From, days, granularity)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(schedule))
}
