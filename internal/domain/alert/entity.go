package alert

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadySent     = errors.New("alert already sent")
	ErrNotFailed       = errors.New("alert is not in failed state")
	ErrNotDispatchable = errors.New("alert is not dispatchable")
)

// Alert is a scheduled notification tied to a reservation's timeline. Status
// moves forward only: pending/scheduled -> sent | failed | cancelled, with
// failed -> pending as the single loop (explicit resend).
type Alert struct {
	id                uuid.UUID
	reservationID     uuid.UUID
	kind              Kind
	scheduledAt       time.Time
	status            Status
	channels          []Channel
	sentAt            *time.Time
	attemptCount      int
	lastFailureReason *string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewAlert(reservationID uuid.UUID, kind Kind, scheduledAt time.Time, channels []Channel, now time.Time) *Alert {
	return &Alert{
		id:            uuid.New(),
		reservationID: reservationID,
		kind:          kind,
		scheduledAt:   scheduledAt,
		status:        StatusScheduled,
		channels:      channels,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructAlert(
	id, reservationID uuid.UUID,
	kind Kind,
	scheduledAt time.Time,
	status Status,
	channels []Channel,
	sentAt *time.Time,
	attemptCount int,
	lastFailureReason *string,
	createdAt, updatedAt time.Time,
) *Alert {
	return &Alert{
		id:                id,
		reservationID:     reservationID,
		kind:              kind,
		scheduledAt:       scheduledAt,
		status:            status,
		channels:          channels,
		sentAt:            sentAt,
		attemptCount:      attemptCount,
		lastFailureReason: lastFailureReason,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (a *Alert) IsDue(now time.Time) bool {
	return a.status.IsUnsent() && !a.scheduledAt.After(now)
}

func (a *Alert) MarkSent(now time.Time) error {
	if !a.status.IsUnsent() {
		return ErrNotDispatchable
	}
	a.status = StatusSent
	a.sentAt = &now
	a.lastFailureReason = nil
	a.updatedAt = now
	return nil
}

func (a *Alert) MarkFailed(reason string, now time.Time) error {
	if !a.status.IsUnsent() {
		return ErrNotDispatchable
	}
	a.status = StatusFailed
	a.attemptCount++
	a.lastFailureReason = &reason
	a.updatedAt = now
	return nil
}

// Cancel drops an undelivered alert. Allowed from any unsent state including
// failed (the cancellation cascade covers every non-sent alert); rejected once
// sent. Cancelling twice is a no-op.
func (a *Alert) Cancel(now time.Time) error {
	if a.status == StatusSent {
		return ErrAlreadySent
	}
	if a.status == StatusCancelled {
		return nil
	}
	a.status = StatusCancelled
	a.updatedAt = now
	return nil
}

// PrepareResend re-arms a failed alert for an immediate dispatch attempt.
func (a *Alert) PrepareResend(now time.Time) error {
	if a.status != StatusFailed {
		return ErrNotFailed
	}
	a.status = StatusPending
	a.lastFailureReason = nil
	a.updatedAt = now
	return nil
}

func (a *Alert) ID() uuid.UUID              { return a.id }
func (a *Alert) ReservationID() uuid.UUID   { return a.reservationID }
func (a *Alert) Kind() Kind                 { return a.kind }
func (a *Alert) ScheduledAt() time.Time     { return a.scheduledAt }
func (a *Alert) Status() Status             { return a.status }
func (a *Alert) Channels() []Channel        { return a.channels }
func (a *Alert) SentAt() *time.Time         { return a.sentAt }
func (a *Alert) AttemptCount() int          { return a.attemptCount }
func (a *Alert) LastFailureReason() *string { return a.lastFailureReason }
func (a *Alert) CreatedAt() time.Time       { return a.createdAt }
func (a *Alert) UpdatedAt() time.Time       { return a.updatedAt }
