package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/slot"
)

type ListSlotsRequest struct {
	ResourceID string `form:"resource_id" binding:"omitempty,uuid"`
}

type SlotResponse struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	DayOfWeek  int       `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	ValidFrom  string    `json:"valid_from,omitempty"`
	ValidUntil string    `json:"valid_until,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewSlotResponse(s slot.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		ResourceID: s.ResourceID,
		DayOfWeek:  int(s.DayOfWeek),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		ValidFrom:  s.ValidFrom,
		ValidUntil: s.ValidUntil,
		CreatedAt:  s.CreatedAt,
	}
}

type CreateSlotRequest struct {
	ResourceID string `json:"resource_id" binding:"required,uuid"`
	DayOfWeek  *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	ValidFrom  string `json:"valid_from"`
	ValidUntil string `json:"valid_until"`
}
