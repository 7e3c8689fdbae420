package request

import (
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/usecase"
)

type CreateRecurrenceRequest struct {
	ScenarioID     uuid.UUID `json:"scenario_id" binding:"required"`
	RequesterID    uuid.UUID `json:"requester_id" binding:"required"`
	Pattern        string    `json:"pattern" binding:"required,oneof=daily weekly monthly custom"`
	RangeStart     string    `json:"range_start" binding:"required"` // 2006-01-02
	RangeEnd       string    `json:"range_end" binding:"required"`
	TimeStart      string    `json:"time_start" binding:"required"` // 15:04
	TimeEnd        string    `json:"time_end" binding:"required"`
	Interval       int       `json:"interval,omitempty"`
	Weekdays       []int     `json:"weekdays,omitempty"` // ISO 1..7
	DayOfMonth     int       `json:"day_of_month,omitempty"`
	MaxOccurrences *int      `json:"max_occurrences,omitempty"`
}

func (r CreateRecurrenceRequest) ToParams() (usecase.CreateDefinitionParams, error) {
	rangeStart, err := time.Parse("2006-01-02", r.RangeStart)
	if err != nil {
		return usecase.CreateDefinitionParams{}, err
	}
	rangeEnd, err := time.Parse("2006-01-02", r.RangeEnd)
	if err != nil {
		return usecase.CreateDefinitionParams{}, err
	}
	timeStart, err := recurrence.ParseTimeOfDay(r.TimeStart)
	if err != nil {
		return usecase.CreateDefinitionParams{}, err
	}
	timeEnd, err := recurrence.ParseTimeOfDay(r.TimeEnd)
	if err != nil {
		return usecase.CreateDefinitionParams{}, err
	}
	weekdays, err := recurrence.NewWeekdays(r.Weekdays)
	if err != nil {
		return usecase.CreateDefinitionParams{}, err
	}

	return usecase.CreateDefinitionParams{
		ScenarioID:     r.ScenarioID,
		RequesterID:    r.RequesterID,
		Pattern:        recurrence.Pattern(r.Pattern),
		RangeStart:     rangeStart,
		RangeEnd:       rangeEnd,
		TimeStart:      timeStart,
		TimeEnd:        timeEnd,
		Interval:       r.Interval,
		Weekdays:       weekdays,
		DayOfMonth:     r.DayOfMonth,
		MaxOccurrences: r.MaxOccurrences,
	}, nil
}
