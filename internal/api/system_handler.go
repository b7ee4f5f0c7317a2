package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

// Pinger checks a backing dependency.
type Pinger func(ctx context.Context) error

type SystemHandler struct {
	pingDB Pinger
}

func NewSystemHandler(pingDB Pinger) *SystemHandler {
	return &SystemHandler{pingDB: pingDB}
}

//
// GET /healthz
//

func (h *SystemHandler) Health(c *gin.Context) {
	if h.pingDB != nil {
		if err := h.pingDB(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

//
// GET /v1/me
//

type MeResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (h *SystemHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, MeResponse{
		ID:      auth.GetUserID(c),
		Email:   auth.GetUserEmail(c),
		IsAdmin: auth.IsAdmin(c),
	})
}
