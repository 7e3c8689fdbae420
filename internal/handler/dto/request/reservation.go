package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ScenarioID  uuid.UUID `json:"scenario_id" binding:"required"`
	RequesterID uuid.UUID `json:"requester_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
