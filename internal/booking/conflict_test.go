package booking

import (
	"testing"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	monday  = "2025-03-03"
	tuesday = "2025-03-04"
)

func fixtureResources() []facility.BookableResource {
	return []facility.BookableResource{
		{ID: "field", Name: "Main field", Kind: facility.KindRegular, IsComposite: true, Includes: []string{"field-a", "field-b"}},
		{ID: "field-a", Name: "Half A", Kind: facility.KindRegular, PartOf: "field"},
		{ID: "field-b", Name: "Half B", Kind: facility.KindRegular, PartOf: "field"},
		{ID: "hall", Name: "Gym", Kind: facility.KindLimited},
		{ID: "room", Name: "Club room", Kind: facility.KindRegular},
	}
}

func fixtureTypes() eventtype.Registry {
	return eventtype.NewRegistry([]eventtype.EventType{
		{ID: "training", Label: "Training", Icon: "T"},
		{ID: "match", Label: "Match", Icon: "M"},
		{ID: "other", Label: "Other", Icon: "O", AllowOverlap: true},
	})
}

func fixtureSlots() []slot.Slot {
	return []slot.Slot{
		{ID: "s-mon", ResourceID: "hall", DayOfWeek: time.Monday, StartTime: "17:00", EndTime: "20:00"},
	}
}

func existing(id, resourceID, date, start, end, bookingType string, status Status) Booking {
	return Booking{
		ID: id, ResourceID: resourceID, Date: date, StartTime: start, EndTime: end,
		Title: "Booking " + id, BookingType: bookingType, Status: status,
	}
}

func snapshot(bookings ...Booking) Snapshot {
	return Snapshot{
		Resources:  fixtureResources(),
		Slots:      fixtureSlots(),
		Bookings:   bookings,
		EventTypes: fixtureTypes(),
	}
}

func request(resourceID, start, end, bookingType string, dates ...string) CheckRequest {
	return CheckRequest{ResourceID: resourceID, Dates: dates, StartTime: start, EndTime: end, BookingType: bookingType}
}

func conflictTypes(dc DateConflicts) []ConflictType {
	out := make([]ConflictType, len(dc.Conflicts))
	for i, c := range dc.Conflicts {
		out[i] = c.Type
	}
	return out
}

func TestCheckConflicts_NoConflicts(t *testing.T) {
	snap := snapshot(existing("b1", "room", monday, "10:00", "11:00", "training", StatusApproved))

	got := CheckConflicts(request("room", "11:00", "12:00", "training", monday, tuesday), snap)

	assert.Empty(t, got)
	assert.False(t, HasBlockingConflict(got))
}

func TestCheckConflicts_EmptyUniverse(t *testing.T) {
	got := CheckConflicts(request("room", "10:00", "11:00", "training", monday), Snapshot{})
	assert.Empty(t, got)
}

func TestCheckConflicts_SameResourceOverlap(t *testing.T) {
	b1 := existing("b1", "room", monday, "10:00", "11:00", "training", StatusApproved)
	snap := snapshot(b1)

	got := CheckConflicts(request("room", "10:30", "11:30", "match", monday, tuesday), snap)

	require.Len(t, got, 1, "only dates with conflicts are reported")
	assert.Equal(t, monday, got[0].Date)
	require.Len(t, got[0].Conflicts, 1)

	c := got[0].Conflicts[0]
	assert.Equal(t, ConflictTimeOverlap, c.Type)
	assert.Equal(t, SeverityError, c.Severity)
	require.NotNil(t, c.Booking)
	assert.Equal(t, "b1", c.Booking.ID)
	require.NotNil(t, c.ExistingType)
	assert.Equal(t, "training", c.ExistingType.ID)
	assert.Contains(t, c.Message, "Booking b1")
	assert.Contains(t, c.Message, "Training")
	assert.NotEmpty(t, c.Explanation)
	assert.True(t, HasBlockingConflict(got))
}

func TestCheckConflicts_TouchingIsFree(t *testing.T) {
	snap := snapshot(existing("b1", "room", monday, "10:00", "11:00", "training", StatusApproved))

	assert.Empty(t, CheckConflicts(request("room", "11:00", "12:00", "training", monday), snap))
	assert.Empty(t, CheckConflicts(request("room", "09:00", "10:00", "training", monday), snap))
}

func TestCheckConflicts_RejectedIgnored(t *testing.T) {
	snap := snapshot(existing("b1", "room", monday, "10:00", "11:00", "training", StatusRejected))

	assert.Empty(t, CheckConflicts(request("room", "10:00", "11:00", "training", monday), snap))
}

func TestCheckConflicts_PendingHoldsTime(t *testing.T) {
	snap := snapshot(existing("b1", "room", monday, "10:00", "11:00", "training", StatusPending))

	got := CheckConflicts(request("room", "10:00", "11:00", "training", monday), snap)
	require.Len(t, got, 1)
	assert.Equal(t, []ConflictType{ConflictTimeOverlap}, conflictTypes(got[0]))
}

func TestCheckConflicts_Severity(t *testing.T) {
	tests := []struct {
		name         string
		requested    string
		existingType string
		wantSeverity Severity
		wantBlocking bool
	}{
		{name: "both allow overlap", requested: "other", existingType: "other", wantSeverity: SeverityWarning},
		{name: "requested disallows", requested: "training", existingType: "other", wantSeverity: SeverityError, wantBlocking: true},
		{name: "existing disallows", requested: "other", existingType: "match", wantSeverity: SeverityError, wantBlocking: true},
		{name: "neither allows", requested: "training", existingType: "match", wantSeverity: SeverityError, wantBlocking: true},
		{name: "unknown requested type", requested: "mystery", existingType: "other", wantSeverity: SeverityError, wantBlocking: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot(existing("b1", "room", monday, "10:00", "11:00", tt.existingType, StatusApproved))

			got := CheckConflicts(request("room", "10:00", "11:00", tt.requested, monday), snap)

			require.Len(t, got, 1)
			require.Len(t, got[0].Conflicts, 1)
			assert.Equal(t, tt.wantSeverity, got[0].Conflicts[0].Severity)
			assert.Equal(t, tt.wantBlocking, HasBlockingConflict(got))
		})
	}
}

func TestCheckConflicts_CompositeBlockedByPart(t *testing.T) {
	snap := snapshot(existing("b1", "field-a", monday, "18:00", "19:00", "training", StatusApproved))

	got := CheckConflicts(request("field", "18:30", "19:30", "training", monday), snap)

	require.Len(t, got, 1)
	require.Len(t, got[0].Conflicts, 1)
	c := got[0].Conflicts[0]
	assert.Equal(t, ConflictCompositeBlocked, c.Type)
	assert.Equal(t, SeverityError, c.Severity)
	assert.Contains(t, c.Message, "Half A")
	assert.Equal(t, "b1", c.Booking.ID)
}

func TestCheckConflicts_PartBlockedByParent(t *testing.T) {
	snap := snapshot(existing("b1", "field", monday, "18:00", "19:00", "match", StatusApproved))

	got := CheckConflicts(request("field-b", "18:00", "18:30", "training", monday), snap)

	require.Len(t, got, 1)
	require.Len(t, got[0].Conflicts, 1)
	c := got[0].Conflicts[0]
	assert.Equal(t, ConflictParentBlocked, c.Type)
	assert.Contains(t, c.Message, "Main field")
}

func TestCheckConflicts_SiblingPartsAreIndependent(t *testing.T) {
	snap := snapshot(existing("b1", "field-a", monday, "18:00", "19:00", "training", StatusApproved))

	assert.Empty(t, CheckConflicts(request("field-b", "18:00", "19:00", "training", monday), snap))
}

func TestCheckConflicts_CompositeWithGeneratedRows(t *testing.T) {
	// A stored composite booking brings blocker rows for each part.
	main := existing("b1", "field", monday, "18:00", "19:00", "match", StatusApproved)
	partA := existing("b1-a", "field-a", monday, "18:00", "19:00", "match", StatusApproved)
	partA.ParentBooking, partA.OriginID = true, "b1"
	partB := existing("b1-b", "field-b", monday, "18:00", "19:00", "match", StatusApproved)
	partB.ParentBooking, partB.OriginID = true, "b1"
	snap := snapshot(main, partA, partB)

	got := CheckConflicts(request("field", "18:00", "19:00", "training", monday), snap)
	require.Len(t, got, 1)
	assert.ElementsMatch(t,
		[]ConflictType{ConflictTimeOverlap, ConflictCompositeBlocked, ConflictCompositeBlocked},
		conflictTypes(got[0]))

	got = CheckConflicts(request("field-a", "18:30", "19:30", "training", monday), snap)
	require.Len(t, got, 1)
	assert.ElementsMatch(t,
		[]ConflictType{ConflictParentBlocked, ConflictTimeOverlap},
		conflictTypes(got[0]))
}

func TestCheckConflicts_LimitedResourceSlots(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		start, end string
		want       []ConflictType
	}{
		{name: "inside slot", date: monday, start: "17:00", end: "20:00"},
		{name: "starts early", date: monday, start: "16:30", end: "18:00", want: []ConflictType{ConflictOutsideSlot}},
		{name: "ends late", date: monday, start: "19:00", end: "20:30", want: []ConflictType{ConflictOutsideSlot}},
		{name: "no slot that weekday", date: tuesday, start: "17:00", end: "18:00", want: []ConflictType{ConflictNoSlot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckConflicts(request("hall", tt.start, tt.end, "training", tt.date), snapshot())
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, conflictTypes(got[0]))
			assert.Equal(t, SeverityError, got[0].Conflicts[0].Severity)
		})
	}
}

func TestCheckConflicts_OutsideSlotCarriesSlot(t *testing.T) {
	got := CheckConflicts(request("hall", "16:00", "17:30", "training", monday), snapshot())

	require.Len(t, got, 1)
	c := got[0].Conflicts[0]
	require.NotNil(t, c.Slot)
	assert.Equal(t, "s-mon", c.Slot.ID)
	assert.Equal(t, "17:00", c.Slot.StartTime)
}

func TestCheckConflicts_SlotValidityWindows(t *testing.T) {
	snap := snapshot()
	snap.Slots = []slot.Slot{
		{ID: "winter", ResourceID: "hall", DayOfWeek: time.Monday, StartTime: "17:00", EndTime: "19:00", ValidUntil: "2025-03-31"},
		{ID: "summer", ResourceID: "hall", DayOfWeek: time.Monday, StartTime: "18:00", EndTime: "21:00", ValidFrom: "2025-04-01"},
	}

	assert.Empty(t, CheckConflicts(request("hall", "17:00", "19:00", "training", monday), snap))

	got := CheckConflicts(request("hall", "17:00", "19:00", "training", "2025-06-02"), snap)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Conflicts[0].Slot)
	assert.Equal(t, "summer", got[0].Conflicts[0].Slot.ID, "the slot in effect on the date is used")

	assert.Empty(t, CheckConflicts(request("hall", "19:00", "21:00", "training", "2025-06-02"), snap))
}

func TestCheckConflicts_NoSlotStillReportsOverlap(t *testing.T) {
	snap := snapshot(existing("b1", "hall", tuesday, "17:00", "18:00", "training", StatusApproved))

	got := CheckConflicts(request("hall", "17:00", "18:00", "training", tuesday), snap)

	require.Len(t, got, 1)
	assert.Equal(t, []ConflictType{ConflictNoSlot, ConflictTimeOverlap}, conflictTypes(got[0]))
}

func TestCheckConflicts_UnknownResource(t *testing.T) {
	snap := snapshot(
		existing("b1", "ghost", monday, "10:00", "11:00", "training", StatusApproved),
		existing("b2", "room", monday, "10:00", "11:00", "training", StatusApproved),
	)

	got := CheckConflicts(request("ghost", "10:00", "11:00", "training", monday), snap)

	require.Len(t, got, 1)
	require.Len(t, got[0].Conflicts, 1)
	assert.Equal(t, ConflictTimeOverlap, got[0].Conflicts[0].Type)
	assert.Equal(t, "b1", got[0].Conflicts[0].Booking.ID)
}

func TestCheckConflicts_SeriesAcrossDates(t *testing.T) {
	snap := snapshot(
		existing("b1", "room", "2025-03-10", "18:00", "19:00", "training", StatusApproved),
		existing("b2", "room", "2025-03-24", "18:30", "20:00", "match", StatusPending),
	)
	dates := []string{"2025-03-03", "2025-03-10", "2025-03-17", "2025-03-24"}

	got := CheckConflicts(request("room", "18:00", "19:00", "training", dates...), snap)

	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-10", got[0].Date)
	assert.Equal(t, "2025-03-24", got[1].Date)
}

func TestCheckConflicts_ResultDoesNotAliasSnapshot(t *testing.T) {
	snap := snapshot(
		existing("b1", "room", monday, "10:00", "11:00", "training", StatusApproved),
		existing("b2", "room", monday, "10:30", "11:30", "match", StatusApproved),
	)

	got := CheckConflicts(request("room", "10:00", "12:00", "training", monday), snap)

	require.Len(t, got, 1)
	require.Len(t, got[0].Conflicts, 2)
	assert.Equal(t, "b1", got[0].Conflicts[0].Booking.ID)
	assert.Equal(t, "b2", got[0].Conflicts[1].Booking.ID)
}
