package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/facilities", authMiddleware, h.ListFacilities)

	group := g.Group("/resources")
	group.Use(authMiddleware)
	{
		group.GET("", h.ListResources)
		group.GET("/:id", h.GetResource)
		group.DELETE("/cache", adminMiddleware, h.InvalidateCache)
	}
}
