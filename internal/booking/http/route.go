package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/check", h.Check)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Delete)
		group.DELETE("/series/:series_id", h.DeleteSeries)
	}

	// === Admin Routes ===
	{
		group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
		group.PATCH("/series/:series_id/status", adminMiddleware, h.UpdateSeriesStatus)
	}
}
