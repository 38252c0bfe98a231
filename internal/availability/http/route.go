package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/tutors/:id")

	// Schedule and template reads are public; students browse before login.
	group.GET("/availability", h.GetTemplate)
	group.GET("/schedule", h.GetSchedule)

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.PUT("/availability", h.PutTemplate)
	}
}
