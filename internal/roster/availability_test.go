package roster

import (
	"testing"

	"medsync/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAvailabilityEmpty(t *testing.T) {
	for _, s := range []entity.WeeklySchedule{
		nil,
		{},
		{entity.Monday: entity.SlotUnavailable, entity.Tuesday: "", entity.Sunday: "  "},
	} {
		a := FormatAvailability(s)

		assert.True(t, a.IsEmpty())
		assert.Nil(t, a.Entries)
		assert.Equal(t, NoScheduleAvailable, a.Placeholder)
		assert.Equal(t, NoScheduleAvailable, a.String())
		assert.Empty(t, a.Days())
	}
}

func TestFormatAvailabilityOrder(t *testing.T) {
	s := entity.WeeklySchedule{
		entity.Sunday:    "6:00 PM - 8:00 PM",
		entity.Wednesday: "12:00 PM - 2:00 PM",
		entity.Monday:    "8:00 AM - 10:00 AM",
		entity.Tuesday:   entity.SlotUnavailable,
	}

	a := FormatAvailability(s)

	require.Len(t, a.Entries, 3)
	assert.Empty(t, a.Placeholder)
	assert.Equal(t, []string{"Monday", "Wednesday", "Sunday"}, a.Days())
	assert.Equal(t, "Monday: 8:00 AM - 10:00 AM, Wednesday: 12:00 PM - 2:00 PM, Sunday: 6:00 PM - 8:00 PM", a.String())
}

func TestFormatAvailabilityFromJSONNulls(t *testing.T) {
	var s entity.WeeklySchedule
	require.NoError(t, s.UnmarshalJSON([]byte(`{"monday":"8:00 AM - 10:00 AM","tuesday":null}`)))

	a := FormatAvailability(s)

	assert.Equal(t, []DayAvailability{{Day: entity.Monday, Slot: "8:00 AM - 10:00 AM"}}, a.Entries)
}

func TestFormatAvailabilityDoesNotMutateInput(t *testing.T) {
	s := entity.WeeklySchedule{
		entity.Monday:  "8:00 AM - 10:00 AM",
		entity.Tuesday: entity.SlotUnavailable,
	}
	before := s.Clone()

	first := FormatAvailability(s)
	second := FormatAvailability(s)

	assert.Equal(t, before, s)
	assert.Equal(t, first, second)
}
