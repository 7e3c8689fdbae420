package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow     = errors.New("start time must be before end time")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrEmptyReason       = errors.New("rejection reason cannot be empty")
)

// Reservation is a time-bounded claim on a scenario by a requester. Status is
// mutated only through the transition methods below; rows are never deleted,
// cancellation is a status change.
type Reservation struct {
	id              uuid.UUID
	scenarioID      uuid.UUID
	requesterID     uuid.UUID
	slot            TimeSlot
	status          Status
	rejectionReason *string
	recurrenceID    *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation creates a pending reservation. Conflict checking happens in
// the usecase layer against persisted reservations, under the per-scenario
// lock.
func NewReservation(scenarioID, requesterID uuid.UUID, slot TimeSlot, recurrenceID *uuid.UUID, now time.Time) *Reservation {
	return &Reservation{
		id:           uuid.New(),
		scenarioID:   scenarioID,
		requesterID:  requesterID,
		slot:         slot,
		status:       StatusPending,
		recurrenceID: recurrenceID,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructReservation(
	id, scenarioID, requesterID uuid.UUID,
	slot TimeSlot,
	status Status,
	rejectionReason *string,
	recurrenceID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		scenarioID:      scenarioID,
		requesterID:     requesterID,
		slot:            slot,
		status:          status,
		rejectionReason: rejectionReason,
		recurrenceID:    recurrenceID,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Reservation) Approve(now time.Time) error {
	if !r.status.CanTransitionTo(StatusApproved) {
		return ErrInvalidTransition
	}
	r.status = StatusApproved
	r.updatedAt = now
	return nil
}

func (r *Reservation) Reject(reason string, now time.Time) error {
	if reason == "" {
		return ErrEmptyReason
	}
	if !r.status.CanTransitionTo(StatusRejected) {
		return ErrInvalidTransition
	}
	r.status = StatusRejected
	r.rejectionReason = &reason
	r.updatedAt = now
	return nil
}

// Cancel transitions to cancelled. Cancelling an already-cancelled
// reservation is an idempotent no-op; the returned bool reports whether the
// status actually changed so callers can skip side effects on replays.
func (r *Reservation) Cancel(now time.Time) (bool, error) {
	if r.status == StatusCancelled {
		return false, nil
	}
	if !r.status.CanTransitionTo(StatusCancelled) {
		return false, ErrInvalidTransition
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return true, nil
}

func (r *Reservation) ConflictsWith(other *Reservation) bool {
	return r.scenarioID == other.scenarioID && r.slot.Overlaps(other.slot)
}

func (r *Reservation) IsBlocking() bool {
	return r.status == StatusPending || r.status == StatusApproved
}

func (r *Reservation) HasStarted(now time.Time) bool {
	return !now.Before(r.slot.Start())
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) ScenarioID() uuid.UUID    { return r.scenarioID }
func (r *Reservation) RequesterID() uuid.UUID   { return r.requesterID }
func (r *Reservation) Slot() TimeSlot           { return r.slot }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) RejectionReason() *string { return r.rejectionReason }
func (r *Reservation) RecurrenceID() *uuid.UUID { return r.recurrenceID }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }
