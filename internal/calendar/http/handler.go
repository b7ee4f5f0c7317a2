package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service calendar.Service
}

func NewHandler(service calendar.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Week(c *gin.Context) {
	var req WeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	days, err := h.service.Week(c.Request.Context(), req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := WeekResponse{Days: make([]DayResponse, len(days))}
	for i, d := range days {
		resp.Days[i] = NewDayResponse(d)
	}
	if len(days) > 0 {
		resp.WeekStart = days[0].Date
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListHolidays(c *gin.Context) {
	var req HolidayRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	holidays, err := h.service.ListHolidays(c.Request.Context(), req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HolidayResponse, len(holidays))
	for i, hol := range holidays {
		items[i] = NewHolidayResponse(hol)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ImportHolidays(c *gin.Context) {
	var body ImportHolidaysRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.ImportHolidays(c.Request.Context(), body.Holidays)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": n})
}
