package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/tutors")

	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.PATCH("/:id/settings", h.UpdateSettings)
	}
}
