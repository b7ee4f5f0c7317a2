package http

import (
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
)

type WeekRequest struct {
	Date string `form:"date" binding:"required"`
}

type HolidayRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type DayResponse struct {
	Date           string  `json:"date"`
	DayOfWeek      int     `json:"day_of_week"`
	PublicHoliday  *string `json:"feiertag"`
	SchoolVacation *string `json:"schulferien"`
}

func NewDayResponse(d calendar.Day) DayResponse {
	return DayResponse{
		Date:           d.Date,
		DayOfWeek:      int(d.Weekday),
		PublicHoliday:  d.Info.PublicHoliday,
		SchoolVacation: d.Info.SchoolVacation,
	}
}

type WeekResponse struct {
	WeekStart string        `json:"week_start"`
	Days      []DayResponse `json:"days"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func NewHolidayResponse(h calendar.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		Type:      string(h.Kind),
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
	}
}

type ImportHolidaysRequest struct {
	Holidays []calendar.HolidayRecord `json:"holidays" binding:"required,min=1"`
}
