package response

import (
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/alert"
	"scenario-booking/internal/usecase"
)

type AlertResponse struct {
	ID                uuid.UUID  `json:"id"`
	ReservationID     uuid.UUID  `json:"reservationId"`
	Kind              string     `json:"kind"`
	Status            string     `json:"status"`
	ScheduledAt       time.Time  `json:"scheduledAt"`
	Channels          []string   `json:"channels"`
	SentAt            *time.Time `json:"sentAt,omitempty"`
	AttemptCount      int        `json:"attemptCount"`
	LastFailureReason *string    `json:"lastFailureReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type ProcessReportResponse struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

type SweepReportResponse struct {
	Swept int `json:"swept"`
}

func FromAlert(a *alert.Alert) *AlertResponse {
	channels := make([]string, 0, len(a.Channels()))
	for _, ch := range a.Channels() {
		channels = append(channels, ch.String())
	}
	return &AlertResponse{
		ID:                a.ID(),
		ReservationID:     a.ReservationID(),
		Kind:              a.Kind().String(),
		Status:            a.Status().String(),
		ScheduledAt:       a.ScheduledAt(),
		Channels:          channels,
		SentAt:            a.SentAt(),
		AttemptCount:      a.AttemptCount(),
		LastFailureReason: a.LastFailureReason(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

func FromProcessReport(report *usecase.ProcessReport) *ProcessReportResponse {
	return &ProcessReportResponse{
		Processed: report.Processed,
		Sent:      report.Sent,
		Failed:    report.Failed,
	}
}

func FromSweepReport(report *usecase.SweepReport) *SweepReportResponse {
	return &SweepReportResponse{Swept: report.Swept}
}
