package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/pkg/keymutex"
)

type CreateReservationParams struct {
	ScenarioID   uuid.UUID
	RequesterID  uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	RecurrenceID *uuid.UUID
}

type ReservationUseCase interface {
	Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Approve(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

// AlertScheduler is the slice of the alert usecase the reservation lifecycle
// needs: schedule on approval, cascade-cancel on rejection/cancellation.
type AlertScheduler interface {
	ScheduleFor(ctx context.Context, res *reservation.Reservation) error
	CancelForReservation(ctx context.Context, reservationID uuid.UUID) error
}

type reservationUseCaseImpl struct {
	scenarioRepo    ScenarioRepository
	reservationRepo ReservationRepository
	alerts          AlertScheduler
	locks           *keymutex.KeyMutex
	clock           clock.Clock
	logger          *slog.Logger
}

func NewReservationUseCase(
	scenarioRepo ScenarioRepository,
	reservationRepo ReservationRepository,
	alerts AlertScheduler,
	locks *keymutex.KeyMutex,
	clock clock.Clock,
	logger *slog.Logger,
) ReservationUseCase {
	return &reservationUseCaseImpl{
		scenarioRepo:    scenarioRepo,
		reservationRepo: reservationRepo,
		alerts:          alerts,
		locks:           locks,
		clock:           clock,
		logger:          logger,
	}
}

func (u *reservationUseCaseImpl) Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	if _, err := u.scenarioRepo.FindByID(ctx, params.ScenarioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrScenarioNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Conflict check and insert must not interleave for the same scenario,
	// otherwise two concurrent bookings can both pass the check.
	key := params.ScenarioID.String()
	u.locks.Lock(key)
	defer u.locks.Unlock(key)

	overlapping, err := u.reservationRepo.FindOverlapping(
		ctx, params.ScenarioID, slot.Start(), slot.End(), reservation.BlockingStatuses())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(overlapping) > 0 {
		return nil, errs.ErrReservationConflict
	}

	res := reservation.NewReservation(
		params.ScenarioID, params.RequesterID, slot, params.RecurrenceID, u.clock.Now())
	if err := u.reservationRepo.Create(ctx, res); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrReservationConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return res, nil
}

func (u *reservationUseCaseImpl) Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return u.findByID(ctx, id)
}

func (u *reservationUseCaseImpl) Approve(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := res.Approve(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStateTransition)
	}
	if err := u.reservationRepo.Update(ctx, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Alert creation is a side effect of approval. A failure here leaves the
	// approval in place; it is logged rather than surfaced because the
	// reservation itself is already committed.
	if err := u.alerts.ScheduleFor(ctx, res); err != nil {
		u.logger.Warn("failed to schedule alerts for approved reservation",
			"reservation_id", res.ID(), "error", err)
	}

	return res, nil
}

func (u *reservationUseCaseImpl) Reject(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	res, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := res.Reject(reason, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStateTransition)
	}
	if err := u.reservationRepo.Update(ctx, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.cascadeCancelAlerts(ctx, res.ID())
	return res, nil
}

func (u *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := res.Cancel(u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStateTransition)
	}
	if !changed {
		// Already cancelled: idempotent no-op, no cascade replay.
		return res, nil
	}
	if err := u.reservationRepo.Update(ctx, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.cascadeCancelAlerts(ctx, res.ID())
	return res, nil
}

// cascadeCancelAlerts drops the reservation's undelivered alerts. A partial
// failure leaves stragglers for the expiry sweep, so it is logged and not
// propagated.
func (u *reservationUseCaseImpl) cascadeCancelAlerts(ctx context.Context, reservationID uuid.UUID) {
	if err := u.alerts.CancelForReservation(ctx, reservationID); err != nil {
		u.logger.Warn("failed to cancel alerts for reservation",
			"reservation_id", reservationID, "error", err)
	}
}

func (u *reservationUseCaseImpl) findByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}
