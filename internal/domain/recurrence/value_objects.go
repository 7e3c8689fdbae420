package recurrence

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a day, minute resolution.
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %02d:%02d: %w", hour, minute, ErrInvalidTimeWindow)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay accepts "15:04" strings, the wire and storage format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, ErrInvalidTimeWindow)
	}
	return TimeOfDay{hour: t.Hour(), minute: t.Minute()}, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}

// On anchors the time of day to a calendar date, keeping the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Weekdays is a set of ISO weekdays (1 = Monday .. 7 = Sunday), stored as a
// bitmask so it round-trips through a single integer column.
type Weekdays uint8

func NewWeekdays(days []int) (Weekdays, error) {
	var w Weekdays
	for _, d := range days {
		if d < 1 || d > 7 {
			return 0, fmt.Errorf("weekday %d out of range 1..7: %w", d, ErrInvalidWeekdays)
		}
		w |= 1 << (d - 1)
	}
	return w, nil
}

func WeekdaysFromBits(bits uint8) Weekdays {
	return Weekdays(bits & 0x7f)
}

func (w Weekdays) IsEmpty() bool {
	return w == 0
}

// Contains maps Go's Sunday-based weekday onto the ISO numbering.
func (w Weekdays) Contains(d time.Weekday) bool {
	iso := int(d)
	if iso == 0 {
		iso = 7
	}
	return w&(1<<(iso-1)) != 0
}

func (w Weekdays) Bits() uint8 {
	return uint8(w)
}

func (w Weekdays) List() []int {
	var days []int
	for d := 1; d <= 7; d++ {
		if w&(1<<(d-1)) != 0 {
			days = append(days, d)
		}
	}
	return days
}
