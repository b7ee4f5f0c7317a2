package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "booking conflicts with existing bookings or slots")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidTime       = apperror.New(http.StatusBadRequest, "times must be formatted as HH:MM")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "only pending bookings can be approved or rejected")
	ErrResourceNotFound  = apperror.New(http.StatusNotFound, "resource not found")
	ErrNoDates           = apperror.New(http.StatusBadRequest, "no booking dates in the requested range")
	ErrTooManyDates      = apperror.New(http.StatusBadRequest, "too many booking dates in one request")
	ErrInvalidInput      = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrUnknownType       = apperror.New(http.StatusBadRequest, "unknown booking type")
)

// MaxDatesPerRequest caps the occurrences of one request (two years of weekly dates).
const MaxDatesPerRequest = 104

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Booking is a single occurrence on one resource and one day.
//
// ParentBooking marks rows generated to block the parts of a composite resource;
// OriginID then points at the composite booking that produced them.
type Booking struct {
	ID            string
	ResourceID    string
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	Title         string
	BookingType   string
	UserID        string
	TeamID        string
	Status        Status
	SeriesID      string
	ParentBooking bool
	OriginID      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Holds reports whether the booking still occupies its time.
func (b Booking) Holds() bool {
	return b.Status != StatusRejected
}

type Filter struct {
	ResourceID string
	SeriesID   string
	UserID     string
	Status     string
	DateFrom   string
	DateTo     string
	Page       int
	PageSize   int
	SortOrder  string
}
