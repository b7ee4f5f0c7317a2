package slot

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "slot start time must be before end time")
	ErrInvalidTime        = apperror.New(http.StatusBadRequest, "slot times must be formatted as HH:MM")
	ErrInvalidDayOfWeek   = apperror.New(http.StatusBadRequest, "day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidValidity    = apperror.New(http.StatusBadRequest, "valid_from must not be after valid_until")
	ErrResourceNotLimited = apperror.New(http.StatusBadRequest, "slots can only be defined for slot-only resources")
)

// Slot is a weekly window in which a limited resource may be booked.
// Empty ValidFrom/ValidUntil leave that side of the validity window open.
type Slot struct {
	ID         string
	ResourceID string
	DayOfWeek  time.Weekday
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	ValidFrom  string // YYYY-MM-DD
	ValidUntil string // YYYY-MM-DD
	CreatedAt  time.Time
}

// ActiveOn reports whether the slot is in effect on date (midnight UTC).
// Unparseable bounds make the slot inactive.
func (s Slot) ActiveOn(date time.Time) bool {
	if s.ValidFrom != "" {
		from, err := calendar.ParseDateISO(s.ValidFrom)
		if err != nil || date.Before(from) {
			return false
		}
	}
	if s.ValidUntil != "" {
		until, err := calendar.ParseDateISO(s.ValidUntil)
		if err != nil || date.After(until) {
			return false
		}
	}
	return true
}

// Find returns the first slot for resourceID on the weekday of date that is in effect.
func Find(slots []Slot, resourceID string, date time.Time) (Slot, bool) {
	for _, s := range slots {
		if s.ResourceID == resourceID && s.DayOfWeek == date.Weekday() && s.ActiveOn(date) {
			return s, true
		}
	}
	return Slot{}, false
}

// Filter defines parameters for listing slots.
type Filter struct {
	ResourceID  string
	ResourceIDs []string
}
