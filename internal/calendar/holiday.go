package calendar

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "start date must not be after end date")
	ErrInvalidKind      = apperror.New(http.StatusBadRequest, "holiday type must be feiertag or schulferien")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "holiday name is required")
)

// Kind distinguishes public holidays from school vacations.
type Kind string

const (
	KindPublicHoliday  Kind = "feiertag"
	KindSchoolVacation Kind = "schulferien"
)

// Holiday is a named, inclusive date range.
type Holiday struct {
	ID        string
	Name      string
	Kind      Kind
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	CreatedAt time.Time
}

// HolidayInfo holds the labels that apply to a single day.
type HolidayInfo struct {
	PublicHoliday  *string `json:"feiertag"`
	SchoolVacation *string `json:"schulferien"`
}

// Contains reports whether dateISO lies within the holiday's range.
func (h Holiday) Contains(dateISO string) bool {
	return h.StartDate <= dateISO && dateISO <= h.EndDate
}

// DateHolidayInfo returns the public holiday and school vacation covering dateISO.
// When several records of one kind match, the last one wins.
func DateHolidayInfo(dateISO string, holidays []Holiday) HolidayInfo {
	var info HolidayInfo
	for _, h := range holidays {
		if !h.Contains(dateISO) {
			continue
		}
		name := h.Name
		switch h.Kind {
		case KindPublicHoliday:
			info.PublicHoliday = &name
		case KindSchoolVacation:
			info.SchoolVacation = &name
		}
	}
	return info
}

// HolidayRecord is an inbound holiday payload. Producers disagree on naming,
// so both snake_case and camelCase date fields are accepted.
type HolidayRecord struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	StartDateSnake string `json:"start_date"`
	StartDateCamel string `json:"startDate"`
	EndDateSnake   string `json:"end_date"`
	EndDateCamel   string `json:"endDate"`
}

// NormalizeHolidays converts inbound records into canonical Holidays.
// A record without an end date is treated as a single day.
func NormalizeHolidays(records []HolidayRecord) ([]Holiday, error) {
	out := make([]Holiday, 0, len(records))
	for _, r := range records {
		start := firstNonEmpty(r.StartDateSnake, r.StartDateCamel)
		end := firstNonEmpty(r.EndDateSnake, r.EndDateCamel, start)

		if r.Name == "" {
			return nil, ErrNameRequired
		}
		kind := Kind(r.Type)
		if kind != KindPublicHoliday && kind != KindSchoolVacation {
			return nil, ErrInvalidKind
		}
		if _, err := ParseDateISO(start); err != nil {
			return nil, ErrInvalidDate.WithCause(err)
		}
		if _, err := ParseDateISO(end); err != nil {
			return nil, ErrInvalidDate.WithCause(err)
		}
		if start > end {
			return nil, ErrInvalidDateRange
		}

		out = append(out, Holiday{
			Name:      r.Name,
			Kind:      kind,
			StartDate: start,
			EndDate:   end,
		})
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
