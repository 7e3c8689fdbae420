package response

import (
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/reservation"
)

type ReservationResponse struct {
	ID              uuid.UUID  `json:"id"`
	ScenarioID      uuid.UUID  `json:"scenarioId"`
	RequesterID     uuid.UUID  `json:"requesterId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	RecurrenceID    *uuid.UUID `json:"recurrenceId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromReservation(res *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              res.ID(),
		ScenarioID:      res.ScenarioID(),
		RequesterID:     res.RequesterID(),
		StartTime:       res.Slot().Start(),
		EndTime:         res.Slot().End(),
		Status:          res.Status().String(),
		RejectionReason: res.RejectionReason(),
		RecurrenceID:    res.RecurrenceID(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}
