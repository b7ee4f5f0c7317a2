package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for wall-clock times.
	ClockLayout = "15:04"
)

// FormatDateISO renders the local year/month/day of t as YYYY-MM-DD.
func FormatDateISO(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateISO parses a YYYY-MM-DD string as midnight UTC.
func ParseDateISO(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// WeekStart returns Monday 00:00 of the week containing t.
// Sunday counts as the 7th day, so weeks always start on Monday.
func WeekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, 1-day)
}

// WeekDates returns Monday through Sunday of the week containing t.
func WeekDates(t time.Time) [7]time.Time {
	var days [7]time.Time
	start := WeekStart(t)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Malformed parts count as zero; use ParseClock to validate input.
func TimeToMinutes(clock string) int {
	h, m, _ := strings.Cut(clock, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

// ParseClock validates an "HH:MM" string and returns its minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SeriesDates returns every date in [startISO, endISO] falling on weekday,
// starting from the first matching day and stepping by one week.
// The result is empty when no such day exists, the bounds do not parse,
// or weekday is outside Sunday..Saturday.
func SeriesDates(weekday time.Weekday, startISO, endISO string) []string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return []string{}
	}
	start, err := ParseDateISO(startISO)
	if err != nil {
		return []string{}
	}
	end, err := ParseDateISO(endISO)
	if err != nil {
		return []string{}
	}

	cursor := start
	for cursor.Weekday() != weekday {
		cursor = cursor.AddDate(0, 0, 1)
	}

	dates := []string{}
	for !cursor.After(end) {
		dates = append(dates, FormatDateISO(cursor))
		cursor = cursor.AddDate(0, 0, 7)
	}
	return dates
}
