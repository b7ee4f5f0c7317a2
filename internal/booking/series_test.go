package booking

import (
	"testing"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(bookings []Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

func TestFindConflicts(t *testing.T) {
	target := existing("t", "room", monday, "18:00", "19:00", "training", StatusPending)
	target.SeriesID = "series-1"

	sibling := existing("sibling", "room", monday, "18:00", "19:00", "training", StatusPending)
	sibling.SeriesID = "series-1"
	foreignSeries := existing("foreign", "room", monday, "18:30", "19:30", "match", StatusApproved)
	foreignSeries.SeriesID = "series-2"

	all := []Booking{
		target,
		sibling,
		foreignSeries,
		existing("single", "room", monday, "17:30", "18:15", "match", StatusPending),
		existing("rejected", "room", monday, "18:00", "19:00", "match", StatusRejected),
		existing("other-room", "hall", monday, "18:00", "19:00", "match", StatusApproved),
		existing("other-day", "room", tuesday, "18:00", "19:00", "match", StatusApproved),
		existing("touching", "room", monday, "19:00", "20:00", "match", StatusApproved),
	}

	got := FindConflicts(target, all)

	assert.Equal(t, []string{"foreign", "single"}, ids(got))
}

func TestFindConflicts_WithoutSeries(t *testing.T) {
	target := existing("t", "room", monday, "18:00", "19:00", "training", StatusApproved)
	other := existing("o", "room", monday, "18:00", "19:00", "training", StatusApproved)

	// Two standalone bookings never share a series, even with empty ids.
	assert.Equal(t, []string{"o"}, ids(FindConflicts(target, []Booking{target, other})))
}

func TestFindConflicts_Empty(t *testing.T) {
	target := existing("t", "room", monday, "18:00", "19:00", "training", StatusApproved)

	assert.Empty(t, FindConflicts(target, nil))
	assert.Empty(t, FindConflicts(target, []Booking{target}))
}

func TestResolveDates(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		rec     *Recurrence
		want    []string
		wantErr error
	}{
		{name: "single date", date: monday, want: []string{monday}},
		{name: "single date invalid", date: "03.03.2025", wantErr: ErrInvalidInput},
		{
			name: "weekly series",
			rec:  &Recurrence{DayOfWeek: time.Monday, StartDate: "2025-03-01", EndDate: "2025-03-17"},
			want: []string{"2025-03-03", "2025-03-10", "2025-03-17"},
		},
		{
			name:    "no matching weekday",
			rec:     &Recurrence{DayOfWeek: time.Friday, StartDate: "2025-03-03", EndDate: "2025-03-05"},
			wantErr: ErrNoDates,
		},
		{
			name:    "bad bound",
			rec:     &Recurrence{DayOfWeek: time.Monday, StartDate: "2025-03-03", EndDate: "soon"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad weekday",
			rec:     &Recurrence{DayOfWeek: time.Weekday(7), StartDate: "2025-03-03", EndDate: "2025-03-10"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "too long",
			rec:     &Recurrence{DayOfWeek: time.Monday, StartDate: "2025-01-01", EndDate: "2027-12-31"},
			wantErr: ErrTooManyDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDates(tt.date, tt.rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildOccurrences_Regular(t *testing.T) {
	room := facility.BookableResource{ID: "room", Kind: facility.KindRegular}
	draft := Draft{UserID: "u1", TeamID: "team", Title: "Practice", BookingType: "training", StartTime: "18:00", EndTime: "19:00"}

	rows := BuildOccurrences(draft, room, []string{"2025-03-03", "2025-03-10"}, "series-1")

	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.NotEmpty(t, row.ID)
		assert.Equal(t, "room", row.ResourceID)
		assert.Equal(t, []string{"2025-03-03", "2025-03-10"}[i], row.Date)
		assert.Equal(t, StatusPending, row.Status)
		assert.Equal(t, "series-1", row.SeriesID)
		assert.Equal(t, "u1", row.UserID)
		assert.Equal(t, "team", row.TeamID)
		assert.False(t, row.ParentBooking)
		assert.Empty(t, row.OriginID)
	}
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}

func TestBuildOccurrences_Composite(t *testing.T) {
	field := facility.BookableResource{ID: "field", IsComposite: true, Includes: []string{"field-a", "field-b"}}
	draft := Draft{UserID: "u1", Title: "Match day", BookingType: "match", StartTime: "10:00", EndTime: "12:00"}

	rows := BuildOccurrences(draft, field, []string{monday}, "")

	require.Len(t, rows, 3)
	main := rows[0]
	assert.Equal(t, "field", main.ResourceID)
	assert.False(t, main.ParentBooking)
	assert.Empty(t, main.SeriesID)

	for i, part := range []string{"field-a", "field-b"} {
		blocker := rows[i+1]
		assert.Equal(t, part, blocker.ResourceID)
		assert.True(t, blocker.ParentBooking)
		assert.Equal(t, main.ID, blocker.OriginID)
		assert.Equal(t, main.Date, blocker.Date)
		assert.Equal(t, main.StartTime, blocker.StartTime)
		assert.Equal(t, main.EndTime, blocker.EndTime)
		assert.NotEqual(t, main.ID, blocker.ID)
	}
}

func TestBuildOccurrences_BlocksOwnParts(t *testing.T) {
	field := facility.BookableResource{ID: "field", IsComposite: true, Includes: []string{"field-a", "field-b"}}
	rows := BuildOccurrences(Draft{BookingType: "match", StartTime: "10:00", EndTime: "12:00"}, field, []string{monday}, "")

	stored := make([]Booking, len(rows))
	for i, r := range rows {
		stored[i] = *r
	}

	got := CheckConflicts(request("field-a", "11:00", "11:30", "training", monday), snapshot(stored...))
	require.Len(t, got, 1)
	assert.True(t, HasBlockingConflict(got))
}
