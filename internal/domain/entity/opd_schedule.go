package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Weekday is a lower-case day-of-week key used by OPD schedules
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days in display order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// SlotUnavailable marks a day without OPD hours. It is never stored.
const SlotUnavailable = "Not Available"

// OPDSlots is the fixed set of selectable OPD time ranges
var OPDSlots = []string{
	"8:00 AM - 10:00 AM",
	"10:00 AM - 12:00 PM",
	"12:00 PM - 2:00 PM",
	"2:00 PM - 4:00 PM",
	"4:00 PM - 6:00 PM",
	"6:00 PM - 8:00 PM",
}

// ParseWeekday accepts any casing and surrounding whitespace
func ParseWeekday(s string) (Weekday, bool) {
	day := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range Weekdays {
		if d == day {
			return d, true
		}
	}
	return "", false
}

// Title returns the capitalized day name, e.g. "Monday"
func (d Weekday) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// IsOPDSlot reports whether slot is one of OPDSlots
func IsOPDSlot(slot string) bool {
	slot = strings.TrimSpace(slot)
	for _, s := range OPDSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// IsUnavailableSlot reports whether a raw slot value means "no hours that day"
func IsUnavailableSlot(slot string) bool {
	slot = strings.TrimSpace(slot)
	return slot == "" || slot == SlotUnavailable
}

// WeeklySchedule maps a day to its OPD slot.
// A missing day means the doctor has no OPD hours on that day.
type WeeklySchedule map[Weekday]string

// Normalize returns a copy keeping only known days with a non-sentinel slot
func (s WeeklySchedule) Normalize() WeeklySchedule {
	out := make(WeeklySchedule, len(s))
	for day, slot := range s {
		d, ok := ParseWeekday(string(day))
		if !ok || IsUnavailableSlot(slot) {
			continue
		}
		out[d] = strings.TrimSpace(slot)
	}
	return out
}

// HasAvailability reports whether at least one day holds a slot
func (s WeeklySchedule) HasAvailability() bool {
	for _, slot := range s {
		if !IsUnavailableSlot(slot) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (s WeeklySchedule) Clone() WeeklySchedule {
	if s == nil {
		return nil
	}
	out := make(WeeklySchedule, len(s))
	for day, slot := range s {
		out[day] = slot
	}
	return out
}

// UnmarshalJSON accepts null values for unavailable days and drops them
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}

	out := make(WeeklySchedule, len(raw))
	for key, value := range raw {
		day, ok := ParseWeekday(key)
		if !ok {
			return fmt.Errorf("unknown weekday %q", key)
		}
		if value == nil || IsUnavailableSlot(*value) {
			continue
		}
		out[day] = strings.TrimSpace(*value)
	}
	*s = out
	return nil
}

// Value implements driver.Valuer for the jsonb column
func (s WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(s.Normalize())
}

// Scan implements sql.Scanner for the jsonb column
func (s *WeeklySchedule) Scan(value interface{}) error {
	if value == nil {
		*s = WeeklySchedule{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal OPD schedule value:", value))
	}
	return s.UnmarshalJSON(bytes)
}
