package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/auth"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/payment"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := uuid.Parse(sessionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), sessionID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewIntentResponse(intent))
}
