package booking

import "github.com/nekogravitycat/club-booking-backend/internal/calendar"

// HasTimeOverlap reports whether [start1,end1) and [start2,end2) intersect.
// All arguments are "HH:MM"; ranges that only touch do not overlap.
func HasTimeOverlap(start1, end1, start2, end2 string) bool {
	s1 := calendar.TimeToMinutes(start1)
	e1 := calendar.TimeToMinutes(end1)
	s2 := calendar.TimeToMinutes(start2)
	e2 := calendar.TimeToMinutes(end2)
	return s1 < e2 && s2 < e1
}
