package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, clientRateLimit gin.HandlerFunc) {
	group := g.Group("/sessions/:id")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("/payment-intent", clientRateLimit, h.CreateIntent)
	}
}
