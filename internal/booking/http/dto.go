package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

// RecurrenceBody requests a weekly series; day_of_week uses 0=Sunday..6=Saturday.
type RecurrenceBody struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type CheckBookingBody struct {
	ResourceID  string          `json:"resource_id" binding:"required"`
	Date        string          `json:"date" binding:"required_without=Recurrence"`
	Recurrence  *RecurrenceBody `json:"recurrence"`
	StartTime   string          `json:"start_time" binding:"required"`
	EndTime     string          `json:"end_time" binding:"required"`
	BookingType string          `json:"booking_type" binding:"required"`
}

func (b *CheckBookingBody) toRequest() booking.AvailabilityRequest {
	req := booking.AvailabilityRequest{
		ResourceID:  b.ResourceID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		BookingType: b.BookingType,
	}
	if b.Recurrence != nil {
		req.Recurrence = &booking.Recurrence{
			DayOfWeek: time.Weekday(*b.Recurrence.DayOfWeek),
			StartDate: b.Recurrence.StartDate,
			EndDate:   b.Recurrence.EndDate,
		}
	}
	return req
}

type CreateBookingBody struct {
	CheckBookingBody
	Title  string `json:"title" binding:"required,max=200"`
	TeamID string `json:"team_id" binding:"omitempty,uuid"`
}

type ListBookingsRequest struct {
	request.ListParams
	ResourceID string `form:"resource_id" binding:"omitempty,uuid"`
	SeriesID   string `form:"series_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Mine       bool   `form:"mine"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type SeriesURI struct {
	SeriesID string `uri:"series_id" binding:"required,uuid"`
}

type BookingResponse struct {
	ID            string    `json:"id"`
	ResourceID    string    `json:"resource_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Title         string    `json:"title"`
	BookingType   string    `json:"booking_type"`
	UserID        string    `json:"user_id"`
	TeamID        *string   `json:"team_id"`
	Status        string    `json:"status"`
	SeriesID      *string   `json:"series_id"`
	ParentBooking bool      `json:"parent_booking"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ResourceID:    b.ResourceID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Title:         b.Title,
		BookingType:   b.BookingType,
		UserID:        b.UserID,
		TeamID:        optional(b.TeamID),
		Status:        string(b.Status),
		SeriesID:      optional(b.SeriesID),
		ParentBooking: b.ParentBooking,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type ListItemResponse struct {
	BookingResponse
	Conflicts []BookingResponse `json:"conflicts"`
}

type SlotRef struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type EventTypeRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type ConflictResponse struct {
	Type         string           `json:"type"`
	Message      string           `json:"message"`
	Severity     string           `json:"severity"`
	Booking      *BookingResponse `json:"booking,omitempty"`
	Slot         *SlotRef         `json:"slot,omitempty"`
	ExistingType *EventTypeRef    `json:"existing_type,omitempty"`
	Explanation  string           `json:"explanation,omitempty"`
}

type DateConflictsResponse struct {
	Date      string             `json:"date"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

func NewConflictsResponse(results []booking.DateConflicts) []DateConflictsResponse {
	out := make([]DateConflictsResponse, len(results))
	for i, dc := range results {
		items := make([]ConflictResponse, len(dc.Conflicts))
		for j, c := range dc.Conflicts {
			item := ConflictResponse{
				Type:        string(c.Type),
				Message:     c.Message,
				Severity:    string(c.Severity),
				Explanation: c.Explanation,
			}
			if c.Booking != nil {
				br := NewBookingResponse(c.Booking)
				item.Booking = &br
			}
			if c.Slot != nil {
				item.Slot = &SlotRef{StartTime: c.Slot.StartTime, EndTime: c.Slot.EndTime}
			}
			if c.ExistingType != nil {
				item.ExistingType = &EventTypeRef{ID: c.ExistingType.ID, Label: c.ExistingType.Label, Icon: c.ExistingType.Icon}
			}
			items[j] = item
		}
		out[i] = DateConflictsResponse{Date: dc.Date, Conflicts: items}
	}
	return out
}

type CheckResponse struct {
	Available bool                    `json:"available"`
	Blocking  bool                    `json:"blocking"`
	Conflicts []DateConflictsResponse `json:"conflicts"`
}

type CreateResponse struct {
	Bookings []BookingResponse      `json:"bookings"`
	Warnings []DateConflictsResponse `json:"warnings"`
}
