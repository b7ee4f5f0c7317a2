package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/calendar/week", authMiddleware, h.Week)

	group := g.Group("/holidays")
	group.Use(authMiddleware)
	{
		group.GET("", h.ListHolidays)
		group.POST("/import", adminMiddleware, h.ImportHolidays)
	}
}
