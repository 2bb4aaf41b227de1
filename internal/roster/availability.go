package roster

import (
	"strings"

	"medsync/internal/domain/entity"
)

// NoScheduleAvailable is shown for a schedule without any OPD day
const NoScheduleAvailable = "No schedule available"

type DayAvailability struct {
	Day  entity.Weekday
	Slot string
}

// Availability is a display-ready weekly schedule in monday to sunday order.
// Placeholder is set only when Entries is empty.
type Availability struct {
	Entries     []DayAvailability
	Placeholder string
}

// FormatAvailability lists the available days of s in display order
func FormatAvailability(s entity.WeeklySchedule) Availability {
	normalized := s.Normalize()

	var entries []DayAvailability
	for _, day := range entity.Weekdays {
		slot, ok := normalized[day]
		if !ok {
			continue
		}
		entries = append(entries, DayAvailability{Day: day, Slot: slot})
	}

	if len(entries) == 0 {
		return Availability{Placeholder: NoScheduleAvailable}
	}
	return Availability{Entries: entries}
}

func (a Availability) IsEmpty() bool {
	return len(a.Entries) == 0
}

// Days returns the capitalized names of the available days
func (a Availability) Days() []string {
	days := make([]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		days = append(days, e.Day.Title())
	}
	return days
}

func (a Availability) String() string {
	if a.IsEmpty() {
		return a.Placeholder
	}
	parts := make([]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		parts = append(parts, e.Day.Title()+": "+e.Slot)
	}
	return strings.Join(parts, ", ")
}
