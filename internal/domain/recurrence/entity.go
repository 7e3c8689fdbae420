package recurrence

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/reservation"
)

var (
	ErrInvalidPattern     = errors.New("unknown recurrence pattern")
	ErrEndBeforeStart     = errors.New("range end before range start")
	ErrInvalidTimeWindow  = errors.New("time start must be before time end")
	ErrInvalidWeekdays    = errors.New("weekly pattern requires a weekday set")
	ErrInvalidDayOfMonth  = errors.New("monthly pattern requires a day of month in 1..31")
	ErrInvalidInterval    = errors.New("interval must be positive")
	ErrInvalidOccurrences = errors.New("max occurrences must be positive")
)

// Definition is a rule that generates a series of reservations on a schedule.
// It is deactivated rather than deleted while generated occurrences exist.
type Definition struct {
	id             uuid.UUID
	scenarioID     uuid.UUID
	requesterID    uuid.UUID
	pattern        Pattern
	rangeStart     time.Time // date, midnight in its location
	rangeEnd       time.Time
	timeStart      TimeOfDay
	timeEnd        TimeOfDay
	interval       int
	weekdays       Weekdays
	dayOfMonth     int
	maxOccurrences *int
	active         bool
	createdAt      time.Time
	updatedAt      time.Time
}

type NewDefinitionParams struct {
	ScenarioID     uuid.UUID
	RequesterID    uuid.UUID
	Pattern        Pattern
	RangeStart     time.Time
	RangeEnd       time.Time
	TimeStart      TimeOfDay
	TimeEnd        TimeOfDay
	Interval       int
	Weekdays       Weekdays
	DayOfMonth     int
	MaxOccurrences *int
}

func NewDefinition(p NewDefinitionParams, now time.Time) (*Definition, error) {
	if !p.Pattern.IsValid() {
		return nil, ErrInvalidPattern
	}
	if p.RangeEnd.Before(p.RangeStart) {
		return nil, ErrEndBeforeStart
	}
	if !p.TimeStart.Before(p.TimeEnd) {
		return nil, ErrInvalidTimeWindow
	}
	if p.Interval == 0 {
		p.Interval = 1
	}
	if p.Interval < 0 {
		return nil, ErrInvalidInterval
	}
	if p.MaxOccurrences != nil && *p.MaxOccurrences <= 0 {
		return nil, ErrInvalidOccurrences
	}

	// Pattern-specific required fields.
	switch p.Pattern {
	case PatternWeekly:
		if p.Weekdays.IsEmpty() {
			return nil, ErrInvalidWeekdays
		}
	case PatternMonthly:
		if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
			return nil, ErrInvalidDayOfMonth
		}
	case PatternDaily, PatternCustom:
	}

	return &Definition{
		id:             uuid.New(),
		scenarioID:     p.ScenarioID,
		requesterID:    p.RequesterID,
		pattern:        p.Pattern,
		rangeStart:     truncateToDay(p.RangeStart),
		rangeEnd:       truncateToDay(p.RangeEnd),
		timeStart:      p.TimeStart,
		timeEnd:        p.TimeEnd,
		interval:       p.Interval,
		weekdays:       p.Weekdays,
		dayOfMonth:     p.DayOfMonth,
		maxOccurrences: p.MaxOccurrences,
		active:         true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructDefinition(
	id, scenarioID, requesterID uuid.UUID,
	pattern Pattern,
	rangeStart, rangeEnd time.Time,
	timeStart, timeEnd TimeOfDay,
	interval int,
	weekdays Weekdays,
	dayOfMonth int,
	maxOccurrences *int,
	active bool,
	createdAt, updatedAt time.Time,
) *Definition {
	return &Definition{
		id:             id,
		scenarioID:     scenarioID,
		requesterID:    requesterID,
		pattern:        pattern,
		rangeStart:     truncateToDay(rangeStart),
		rangeEnd:       truncateToDay(rangeEnd),
		timeStart:      timeStart,
		timeEnd:        timeEnd,
		interval:       interval,
		weekdays:       weekdays,
		dayOfMonth:     dayOfMonth,
		maxOccurrences: maxOccurrences,
		active:         active,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (d *Definition) Deactivate(now time.Time) {
	d.active = false
	d.updatedAt = now
}

// SlotOn builds the concrete reservation window for one occurrence date.
func (d *Definition) SlotOn(date time.Time) (reservation.TimeSlot, error) {
	return reservation.NewTimeSlot(d.timeStart.On(date), d.timeEnd.On(date))
}

func (d *Definition) ID() uuid.UUID          { return d.id }
func (d *Definition) ScenarioID() uuid.UUID  { return d.scenarioID }
func (d *Definition) RequesterID() uuid.UUID { return d.requesterID }
func (d *Definition) Pattern() Pattern       { return d.pattern }
func (d *Definition) RangeStart() time.Time  { return d.rangeStart }
func (d *Definition) RangeEnd() time.Time    { return d.rangeEnd }
func (d *Definition) TimeStart() TimeOfDay   { return d.timeStart }
func (d *Definition) TimeEnd() TimeOfDay     { return d.timeEnd }
func (d *Definition) Interval() int          { return d.interval }
func (d *Definition) Weekdays() Weekdays     { return d.weekdays }
func (d *Definition) DayOfMonth() int        { return d.dayOfMonth }
func (d *Definition) MaxOccurrences() *int   { return d.maxOccurrences }
func (d *Definition) Active() bool           { return d.active }
func (d *Definition) CreatedAt() time.Time   { return d.createdAt }
func (d *Definition) UpdatedAt() time.Time   { return d.updatedAt }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
