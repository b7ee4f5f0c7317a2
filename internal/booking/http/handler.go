package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// writeError renders blocking conflicts with their details; everything else goes through response.Error.
func writeError(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(conflictErr.Code, gin.H{
			"error":     conflictErr.Message,
			"conflicts": NewConflictsResponse(conflictErr.Conflicts),
		})
		return
	}
	response.Error(c, err)
}

func canModify(c *gin.Context, b *booking.Booking) bool {
	return auth.IsAdmin(c) || b.UserID == auth.GetUserID(c)
}

func (h *Handler) Check(c *gin.Context) {
	var body CheckBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	results, err := h.service.Check(c.Request.Context(), body.toRequest())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckResponse{
		Available: len(results) == 0,
		Blocking:  booking.HasBlockingConflict(results),
		Conflicts: NewConflictsResponse(results),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		AvailabilityRequest: body.toRequest(),
		UserID:              userID,
		TeamID:              body.TeamID,
		Title:               body.Title,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := CreateResponse{
		Bookings: make([]BookingResponse, len(result.Bookings)),
		Warnings: NewConflictsResponse(result.Warnings),
	}
	for i, b := range result.Bookings {
		resp.Bookings[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.ListParams.Normalize()

	filter := booking.Filter{
		ResourceID: req.ResourceID,
		SeriesID:   req.SeriesID,
		Status:     req.Status,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortOrder:  req.SortOrder,
	}
	if req.Mine {
		filter.UserID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ListItemResponse, len(bookings))
	for i, b := range bookings {
		conflicts := make([]BookingResponse, len(b.Conflicts))
		for j := range b.Conflicts {
			conflicts[j] = NewBookingResponse(&b.Conflicts[j])
		}
		items[i] = ListItemResponse{BookingResponse: NewBookingResponse(b.Booking), Conflicts: conflicts}
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateSeriesStatus(c *gin.Context) {
	var uri SeriesURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.UpdateSeriesStatus(c.Request.Context(), uri.SeriesID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !canModify(c, b) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only the owner or an admin may delete this booking"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteSeries(c *gin.Context) {
	var uri SeriesURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rows, _, err := h.service.List(c.Request.Context(), booking.Filter{SeriesID: uri.SeriesID, Page: 1, PageSize: 1})
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		response.Error(c, booking.ErrNotFound)
		return
	}
	if !canModify(c, rows[0].Booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only the owner or an admin may delete this series"})
		return
	}

	n, err := h.service.DeleteSeries(c.Request.Context(), uri.SeriesID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
