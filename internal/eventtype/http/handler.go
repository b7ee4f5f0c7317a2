package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type EventTypeResponse struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Icon         string `json:"icon"`
	AllowOverlap bool   `json:"allow_overlap"`
}

type Handler struct {
	service eventtype.Service
}

func NewHandler(service eventtype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EventTypeResponse, len(types))
	for i, t := range types {
		items[i] = EventTypeResponse{ID: t.ID, Label: t.Label, Icon: t.Icon, AllowOverlap: t.AllowOverlap}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/event-types", authMiddleware, h.List)
}
