package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestActiveOn(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		day  string
		want bool
	}{
		{name: "unbounded", slot: Slot{}, day: "2025-03-03", want: true},
		{name: "on first day", slot: Slot{ValidFrom: "2025-03-03"}, day: "2025-03-03", want: true},
		{name: "before start", slot: Slot{ValidFrom: "2025-03-04"}, day: "2025-03-03", want: false},
		{name: "on last day", slot: Slot{ValidUntil: "2025-03-03"}, day: "2025-03-03", want: true},
		{name: "after end", slot: Slot{ValidUntil: "2025-03-02"}, day: "2025-03-03", want: false},
		{name: "inside window", slot: Slot{ValidFrom: "2025-01-01", ValidUntil: "2025-12-31"}, day: "2025-06-15", want: true},
		{name: "broken bound", slot: Slot{ValidFrom: "soon"}, day: "2025-03-03", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.ActiveOn(date(tt.day)))
		})
	}
}

func TestFind(t *testing.T) {
	slots := []Slot{
		{ID: "other-resource", ResourceID: "pool", DayOfWeek: time.Monday},
		{ID: "tuesday", ResourceID: "hall", DayOfWeek: time.Tuesday},
		{ID: "expired", ResourceID: "hall", DayOfWeek: time.Monday, ValidUntil: "2025-01-31"},
		{ID: "current", ResourceID: "hall", DayOfWeek: time.Monday, ValidFrom: "2025-02-01"},
	}

	got, ok := Find(slots, "hall", date("2025-03-03"))
	assert.True(t, ok)
	assert.Equal(t, "current", got.ID, "an earlier slot that is out of effect is skipped")

	got, ok = Find(slots, "hall", date("2025-01-27"))
	assert.True(t, ok)
	assert.Equal(t, "expired", got.ID)

	_, ok = Find(slots, "hall", date("2025-03-05"))
	assert.False(t, ok)

	_, ok = Find(nil, "hall", date("2025-03-03"))
	assert.False(t, ok)
}
