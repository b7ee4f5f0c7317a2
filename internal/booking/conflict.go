package booking

import (
	"fmt"
	"strings"

	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
)

type ConflictType string

const (
	ConflictNoSlot           ConflictType = "no_slot"
	ConflictOutsideSlot      ConflictType = "outside_slot"
	ConflictTimeOverlap      ConflictType = "time_overlap"
	ConflictCompositeBlocked ConflictType = "composite_blocked"
	ConflictParentBlocked    ConflictType = "parent_blocked"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict is one reason a requested booking cannot (or should not) be placed.
type Conflict struct {
	Type         ConflictType
	Message      string
	Severity     Severity
	Booking      *Booking
	Slot         *slot.Slot
	ExistingType *eventtype.EventType
	Explanation  string
}

// DateConflicts groups the conflicts found for one candidate date.
type DateConflicts struct {
	Date      string
	Conflicts []Conflict
}

// CheckRequest is a candidate booking over one or more dates.
type CheckRequest struct {
	ResourceID  string
	Dates       []string
	StartTime   string
	EndTime     string
	BookingType string
}

// Snapshot is the state a check runs against. Callers must load it in one go
// and re-validate at write time; a check result is advisory.
type Snapshot struct {
	Resources  []facility.BookableResource
	Slots      []slot.Slot
	Bookings   []Booking
	EventTypes eventtype.Registry
}

// CheckConflicts evaluates the request for every date and returns only the
// dates that have at least one conflict. An unknown resource id skips the
// slot and composite checks; same-resource overlaps are still reported.
func CheckConflicts(req CheckRequest, snap Snapshot) []DateConflicts {
	index := facility.Index(snap.Resources)
	resource, known := index[req.ResourceID]
	requestedType := snap.EventTypes.Lookup(req.BookingType)

	var results []DateConflicts
	for _, date := range req.Dates {
		var conflicts []Conflict

		if known && resource.IsLimited() {
			if c, ok := checkSlot(req, resource, date, snap.Slots); ok {
				conflicts = append(conflicts, c)
			}
		}

		for i := range snap.Bookings {
			existing := snap.Bookings[i]
			if existing.Date != date || !existing.Holds() {
				continue
			}
			if !HasTimeOverlap(req.StartTime, req.EndTime, existing.StartTime, existing.EndTime) {
				continue
			}

			existingType := snap.EventTypes.Lookup(existing.BookingType)
			severity := SeverityError
			if requestedType.AllowOverlap && existingType.AllowOverlap {
				severity = SeverityWarning
			}
			what := describe(existing, existingType)

			// One booking may produce several conflicts.
			if existing.ResourceID == req.ResourceID {
				conflicts = append(conflicts, Conflict{
					Type:         ConflictTimeOverlap,
					Message:      "Overlaps with " + what,
					Severity:     severity,
					Booking:      &existing,
					ExistingType: &existingType,
					Explanation:  overlapExplanation(severity),
				})
			}
			if known && resource.Spans(existing.ResourceID) {
				part := nameOf(index, existing.ResourceID)
				conflicts = append(conflicts, Conflict{
					Type:         ConflictCompositeBlocked,
					Message:      fmt.Sprintf("%s is already booked: %s", part, what),
					Severity:     severity,
					Booking:      &existing,
					ExistingType: &existingType,
					Explanation: fmt.Sprintf(
						"%s includes %s, so the whole resource cannot be booked while a part is in use.",
						resource.Name, part),
				})
			}
			if known && resource.PartOf != "" && existing.ResourceID == resource.PartOf {
				parent := nameOf(index, resource.PartOf)
				conflicts = append(conflicts, Conflict{
					Type:         ConflictParentBlocked,
					Message:      fmt.Sprintf("%s is booked as a whole: %s", parent, what),
					Severity:     severity,
					Booking:      &existing,
					ExistingType: &existingType,
					Explanation: fmt.Sprintf(
						"%s is part of %s, which is already booked for this time.",
						resource.Name, parent),
				})
			}
		}

		if len(conflicts) > 0 {
			results = append(results, DateConflicts{Date: date, Conflicts: conflicts})
		}
	}
	return results
}

// HasBlockingConflict reports whether any date carries an error-severity conflict.
func HasBlockingConflict(results []DateConflicts) bool {
	for _, dc := range results {
		for _, c := range dc.Conflicts {
			if c.Severity == SeverityError {
				return true
			}
		}
	}
	return false
}

func checkSlot(req CheckRequest, resource facility.BookableResource, date string, slots []slot.Slot) (Conflict, bool) {
	day, err := calendar.ParseDateISO(date)
	var match slot.Slot
	found := false
	if err == nil {
		match, found = slot.Find(slots, resource.ID, day)
	}
	if !found {
		weekday := "this day"
		if err == nil {
			weekday = day.Weekday().String()
		}
		return Conflict{
			Type:        ConflictNoSlot,
			Message:     fmt.Sprintf("No slot available for %s on %s", resource.Name, weekday),
			Severity:    SeverityError,
			Explanation: resource.Name + " can only be booked within its configured time slots.",
		}, true
	}

	reqStart := calendar.TimeToMinutes(req.StartTime)
	reqEnd := calendar.TimeToMinutes(req.EndTime)
	if reqStart < calendar.TimeToMinutes(match.StartTime) || reqEnd > calendar.TimeToMinutes(match.EndTime) {
		return Conflict{
			Type: ConflictOutsideSlot,
			Message: fmt.Sprintf("%s-%s is outside the slot %s-%s",
				req.StartTime, req.EndTime, match.StartTime, match.EndTime),
			Severity:    SeverityError,
			Slot:        &match,
			Explanation: "The requested time must lie completely within the slot.",
		}, true
	}
	return Conflict{}, false
}

func describe(b Booking, t eventtype.EventType) string {
	label := strings.TrimSpace(t.Icon + " " + t.Label)
	return fmt.Sprintf("%s %q (%s-%s)", label, b.Title, b.StartTime, b.EndTime)
}

func overlapExplanation(severity Severity) string {
	if severity == SeverityWarning {
		return "Both booking types allow sharing. Check whether using the resource at the same time makes sense."
	}
	return "The resource is already booked for this time. Choose another time or resource."
}

func nameOf(index map[string]facility.BookableResource, id string) string {
	if r, ok := index[id]; ok && r.Name != "" {
		return r.Name
	}
	return id
}
