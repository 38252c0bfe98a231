package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/auth"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/response"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

type Handler struct {
	service tutor.Service
}

func NewHandler(service tutor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTutorResponse(t))
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := tutor.UpdateSettingsRequest{
		HourlyRateCents:   body.HourlyRateCents,
		MaxWeeklySessions: body.MaxWeeklySessions,
		ClearWeeklyCap:    body.ClearWeeklyCap,
	}

	t, err := h.service.UpdateSettings(c.Request.Context(), id, req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTutorResponse(t))
}
