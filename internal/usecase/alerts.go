package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/alert"
	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/errs"
)

type ProcessReport struct {
	Processed int
	Sent      int
	Failed    int
}

type SweepReport struct {
	Swept int
}

type AlertUseCase interface {
	AlertScheduler

	Get(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	// ProcessDue dispatches every unsent alert whose scheduled time has
	// arrived. One alert's failure never aborts the batch.
	ProcessDue(ctx context.Context, now time.Time) (*ProcessReport, error)
	Resend(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	Cancel(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	// SweepExpired cancels past-due alerts that were never sent.
	SweepExpired(ctx context.Context, now time.Time) (*SweepReport, error)
}

type alertUseCaseImpl struct {
	alertRepo       AlertRepository
	reservationRepo ReservationRepository
	email           EmailSender
	realtime        RealtimeSender
	dispatchTimeout time.Duration
	clock           clock.Clock
	logger          *slog.Logger
}

func NewAlertUseCase(
	alertRepo AlertRepository,
	reservationRepo ReservationRepository,
	email EmailSender,
	realtime RealtimeSender,
	dispatchTimeout time.Duration,
	clock clock.Clock,
	logger *slog.Logger,
) AlertUseCase {
	return &alertUseCaseImpl{
		alertRepo:       alertRepo,
		reservationRepo: reservationRepo,
		email:           email,
		realtime:        realtime,
		dispatchTimeout: dispatchTimeout,
		clock:           clock,
		logger:          logger,
	}
}

// ScheduleFor derives reminder alerts from the reservation's start time.
// Candidates already in the past are skipped, not created.
func (u *alertUseCaseImpl) ScheduleFor(ctx context.Context, res *reservation.Reservation) error {
	now := u.clock.Now()
	for _, c := range alert.ReminderCandidates(res.Slot().Start(), now) {
		a := alert.NewAlert(res.ID(), c.Kind, c.At, alert.AllChannels(), now)
		if err := u.alertRepo.Create(ctx, a); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// CancelForReservation cancels every non-sent alert of the reservation.
// Per-alert failures are collected so the caller can log them; already-sent
// alerts stay untouched.
func (u *alertUseCaseImpl) CancelForReservation(ctx context.Context, reservationID uuid.UUID) error {
	alerts, err := u.alertRepo.FindUnsentByReservation(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var failed []string
	now := u.clock.Now()
	for _, a := range alerts {
		if cancelErr := a.Cancel(now); cancelErr != nil {
			failed = append(failed, a.ID().String())
			continue
		}
		if updateErr := u.alertRepo.Update(ctx, a); updateErr != nil {
			failed = append(failed, a.ID().String())
		}
	}
	if len(failed) > 0 {
		return errs.New("failed to cancel alerts: " + strings.Join(failed, ", "))
	}
	return nil
}

func (u *alertUseCaseImpl) Get(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	return u.findByID(ctx, id)
}

func (u *alertUseCaseImpl) ProcessDue(ctx context.Context, now time.Time) (*ProcessReport, error) {
	due, err := u.alertRepo.FindDue(ctx, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	report := &ProcessReport{Processed: len(due)}
	for _, a := range due {
		if u.dispatchOne(ctx, a, now) {
			report.Sent++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func (u *alertUseCaseImpl) Resend(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	a, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	if err := a.PrepareResend(now); err != nil {
		return nil, errs.Mark(err, errs.ErrAlertNotFailed)
	}
	u.dispatchOne(ctx, a, now)
	return a, nil
}

func (u *alertUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	a, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.Cancel(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrAlertAlreadySent)
	}
	if err := u.alertRepo.Update(ctx, a); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return a, nil
}

func (u *alertUseCaseImpl) SweepExpired(ctx context.Context, now time.Time) (*SweepReport, error) {
	expired, err := u.alertRepo.FindExpired(ctx, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	report := &SweepReport{}
	for _, a := range expired {
		if cancelErr := a.Cancel(now); cancelErr != nil {
			u.logger.Warn("cannot cancel expired alert", "alert_id", a.ID(), "error", cancelErr)
			continue
		}
		if updateErr := u.alertRepo.Update(ctx, a); updateErr != nil {
			u.logger.Error("failed to persist expired alert cancellation",
				"alert_id", a.ID(), "error", updateErr)
			continue
		}
		report.Swept++
		u.logger.Info("expired alert cancelled", "alert_id", a.ID(),
			"kind", a.Kind().String(), "scheduled_at", a.ScheduledAt())
	}
	return report, nil
}

// dispatchOne pushes one alert through its channels and records the outcome
// on the alert itself. Returns true when the alert ended up sent. Channel
// calls run under their own timeout and hold no reservation locks.
func (u *alertUseCaseImpl) dispatchOne(ctx context.Context, a *alert.Alert, now time.Time) bool {
	res, err := u.reservationRepo.FindByID(ctx, a.ReservationID())
	if err != nil {
		u.recordFailure(ctx, a, "load reservation: "+err.Error(), now)
		return false
	}

	subject, body := alertMessage(a.Kind(), res)

	dispatchCtx, cancel := context.WithTimeout(ctx, u.dispatchTimeout)
	defer cancel()

	var failures []string
	for _, ch := range a.Channels() {
		if sendErr := u.send(dispatchCtx, ch, res, subject, body); sendErr != nil {
			failures = append(failures, ch.String()+": "+sendErr.Error())
		}
	}

	if len(failures) > 0 {
		u.recordFailure(ctx, a, strings.Join(failures, "; "), now)
		return false
	}

	if err := a.MarkSent(now); err != nil {
		u.logger.Warn("alert no longer dispatchable", "alert_id", a.ID(), "error", err)
		return false
	}
	if err := u.alertRepo.Update(ctx, a); err != nil {
		u.logger.Error("failed to persist sent alert", "alert_id", a.ID(), "error", err)
		return false
	}
	return true
}

func (u *alertUseCaseImpl) send(ctx context.Context, ch alert.Channel, res *reservation.Reservation, subject, body string) error {
	switch ch {
	case alert.ChannelEmail:
		return u.email.SendEmail(ctx, res.RequesterID().String(), subject, body)
	case alert.ChannelRealtime:
		payload, err := json.Marshal(map[string]any{
			"reservation_id": res.ID(),
			"scenario_id":    res.ScenarioID(),
			"subject":        subject,
			"body":           body,
		})
		if err != nil {
			return err
		}
		return u.realtime.SendRealtime(ctx, res.RequesterID(), payload)
	default:
		return errs.New("unknown channel: " + ch.String())
	}
}

func (u *alertUseCaseImpl) recordFailure(ctx context.Context, a *alert.Alert, reason string, now time.Time) {
	if err := a.MarkFailed(reason, now); err != nil {
		u.logger.Warn("cannot mark alert failed", "alert_id", a.ID(), "error", err)
		return
	}
	if err := u.alertRepo.Update(ctx, a); err != nil {
		u.logger.Error("failed to persist alert failure", "alert_id", a.ID(), "error", err)
	}
	u.logger.Warn("alert dispatch failed", "alert_id", a.ID(),
		"attempts", a.AttemptCount(),
		"error", errs.Mark(errs.New(reason), errs.ErrDispatchFailed))
}

// alertMessage builds the notification content per alert kind. The switch is
// exhaustive over alert.AllKinds; a test keeps it that way.
func alertMessage(kind alert.Kind, res *reservation.Reservation) (subject, body string) {
	start := res.Slot().Start().Format("2006-01-02 15:04")
	switch kind {
	case alert.KindReminder24h:
		return "Reservation tomorrow", fmt.Sprintf("Your reservation starts %s (24 hours from now).", start)
	case alert.KindReminder2h:
		return "Reservation in 2 hours", fmt.Sprintf("Your reservation starts %s.", start)
	case alert.KindReminder30m:
		return "Reservation in 30 minutes", fmt.Sprintf("Your reservation starts %s.", start)
	case alert.KindArrivalConfirm:
		return "Please confirm arrival", fmt.Sprintf("Confirm your arrival for the reservation starting %s.", start)
	case alert.KindExpiration:
		return "Reservation expired", fmt.Sprintf("Your reservation starting %s has expired.", start)
	case alert.KindStateChange:
		return "Reservation updated", fmt.Sprintf("Your reservation starting %s is now %s.", start, res.Status())
	case alert.KindAutoCancel:
		return "Reservation cancelled", fmt.Sprintf("Your reservation starting %s was cancelled automatically.", start)
	default:
		return "Reservation notification", fmt.Sprintf("Update for your reservation starting %s.", start)
	}
}

func (u *alertUseCaseImpl) findByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	a, err := u.alertRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAlertNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return a, nil
}
