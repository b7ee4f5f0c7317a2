package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/slots")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", adminMiddleware, h.Create)
	}
}
