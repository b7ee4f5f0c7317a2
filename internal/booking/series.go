package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
)

// FindConflicts returns the approved or pending bookings that collide with b
// on the same resource and date. Occurrences of b's own series are ignored.
func FindConflicts(b Booking, all []Booking) []Booking {
	var out []Booking
	for _, other := range all {
		if other.ID == b.ID || other.ResourceID != b.ResourceID || other.Date != b.Date {
			continue
		}
		if other.Status != StatusApproved && other.Status != StatusPending {
			continue
		}
		if b.SeriesID != "" && other.SeriesID == b.SeriesID {
			continue
		}
		if HasTimeOverlap(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			out = append(out, other)
		}
	}
	return out
}

// Recurrence describes a weekly series between two dates (inclusive).
type Recurrence struct {
	DayOfWeek time.Weekday
	StartDate string
	EndDate   string
}

// ResolveDates returns the occurrence dates for a single date or a recurrence.
func ResolveDates(date string, rec *Recurrence) ([]string, error) {
	if rec == nil {
		if _, err := calendar.ParseDateISO(date); err != nil {
			return nil, ErrInvalidInput
		}
		return []string{date}, nil
	}

	if rec.DayOfWeek < time.Sunday || rec.DayOfWeek > time.Saturday {
		return nil, ErrInvalidInput
	}
	if _, err := calendar.ParseDateISO(rec.StartDate); err != nil {
		return nil, ErrInvalidInput
	}
	if _, err := calendar.ParseDateISO(rec.EndDate); err != nil {
		return nil, ErrInvalidInput
	}

	dates := calendar.SeriesDates(rec.DayOfWeek, rec.StartDate, rec.EndDate)
	if len(dates) == 0 {
		return nil, ErrNoDates
	}
	if len(dates) > MaxDatesPerRequest {
		return nil, ErrTooManyDates
	}
	return dates, nil
}

// Draft carries the caller-supplied fields shared by all occurrences.
type Draft struct {
	UserID      string
	TeamID      string
	Title       string
	BookingType string
	StartTime   string
	EndTime     string
}

// BuildOccurrences creates one pending row per date on the resource and, for
// a composite, one blocking row per part linked back via OriginID.
func BuildOccurrences(d Draft, resource facility.BookableResource, dates []string, seriesID string) []*Booking {
	rows := make([]*Booking, 0, len(dates)*(1+len(resource.Includes)))
	for _, date := range dates {
		main := &Booking{
			ID:          uuid.NewString(),
			ResourceID:  resource.ID,
			Date:        date,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Title:       d.Title,
			BookingType: d.BookingType,
			UserID:      d.UserID,
			TeamID:      d.TeamID,
			Status:      StatusPending,
			SeriesID:    seriesID,
		}
		rows = append(rows, main)

		if !resource.IsComposite {
			continue
		}
		for _, partID := range resource.Includes {
			blocker := *main
			blocker.ID = uuid.NewString()
			blocker.ResourceID = partID
			blocker.ParentBooking = true
			blocker.OriginID = main.ID
			rows = append(rows, &blocker)
		}
	}
	return rows
}
