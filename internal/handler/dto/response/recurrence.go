package response

import (
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/usecase"
)

type RecurrenceResponse struct {
	ID             uuid.UUID `json:"id"`
	ScenarioID     uuid.UUID `json:"scenarioId"`
	RequesterID    uuid.UUID `json:"requesterId"`
	Pattern        string    `json:"pattern"`
	RangeStart     string    `json:"rangeStart"`
	RangeEnd       string    `json:"rangeEnd"`
	TimeStart      string    `json:"timeStart"`
	TimeEnd        string    `json:"timeEnd"`
	Interval       int       `json:"interval"`
	Weekdays       []int     `json:"weekdays,omitempty"`
	DayOfMonth     int       `json:"dayOfMonth,omitempty"`
	MaxOccurrences *int      `json:"maxOccurrences,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type PreviewEntryResponse struct {
	Date     string `json:"date"`
	Conflict bool   `json:"conflict"`
}

type PreviewResponse struct {
	Entries  []PreviewEntryResponse `json:"entries"`
	Warnings []string               `json:"warnings,omitempty"`
}

type GenerateReportResponse struct {
	Definitions int `json:"definitions"`
	Created     int `json:"created"`
	Failed      int `json:"failed"`
}

func FromDefinition(def *recurrence.Definition) *RecurrenceResponse {
	return &RecurrenceResponse{
		ID:             def.ID(),
		ScenarioID:     def.ScenarioID(),
		RequesterID:    def.RequesterID(),
		Pattern:        def.Pattern().String(),
		RangeStart:     def.RangeStart().Format("2006-01-02"),
		RangeEnd:       def.RangeEnd().Format("2006-01-02"),
		TimeStart:      def.TimeStart().String(),
		TimeEnd:        def.TimeEnd().String(),
		Interval:       def.Interval(),
		Weekdays:       def.Weekdays().List(),
		DayOfMonth:     def.DayOfMonth(),
		MaxOccurrences: def.MaxOccurrences(),
		Active:         def.Active(),
		CreatedAt:      def.CreatedAt(),
		UpdatedAt:      def.UpdatedAt(),
	}
}

func FromPreview(preview *usecase.Preview) *PreviewResponse {
	out := &PreviewResponse{
		Entries:  make([]PreviewEntryResponse, 0, len(preview.Entries)),
		Warnings: preview.Warnings,
	}
	for _, e := range preview.Entries {
		out.Entries = append(out.Entries, PreviewEntryResponse{
			Date:     e.Date.Format("2006-01-02"),
			Conflict: e.Conflict,
		})
	}
	return out
}

func FromGenerateReport(report *usecase.GenerateReport) *GenerateReportResponse {
	return &GenerateReportResponse{
		Definitions: report.Definitions,
		Created:     report.Created,
		Failed:      report.Failed,
	}
}
