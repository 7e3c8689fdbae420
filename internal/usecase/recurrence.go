package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/errs"
)

const (
	previewOccurrenceWarnThreshold = 100
	previewRangeWarnDays           = 365
)

type CreateDefinitionParams struct {
	ScenarioID     uuid.UUID
	RequesterID    uuid.UUID
	Pattern        recurrence.Pattern
	RangeStart     time.Time
	RangeEnd       time.Time
	TimeStart      recurrence.TimeOfDay
	TimeEnd        recurrence.TimeOfDay
	Interval       int
	Weekdays       recurrence.Weekdays
	DayOfMonth     int
	MaxOccurrences *int
}

type PreviewEntry struct {
	Date     time.Time
	Conflict bool
}

type Preview struct {
	Entries  []PreviewEntry
	Warnings []string
}

type GenerateReport struct {
	Definitions int
	Created     int
	Failed      int
}

type RecurrenceUseCase interface {
	CreateDefinition(ctx context.Context, params CreateDefinitionParams) (*recurrence.Definition, error)
	GetDefinition(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error)
	PreviewConflicts(ctx context.Context, id uuid.UUID) (*Preview, error)
	// MaterializeUpTo books every pending occurrence with a date up to and
	// including horizon, through the normal booking path. Idempotent: dates
	// whose window is already held are skipped.
	MaterializeUpTo(ctx context.Context, id uuid.UUID, horizon time.Time) ([]uuid.UUID, error)
	GeneratePendingForAllActive(ctx context.Context, lookaheadDays int) (*GenerateReport, error)
}

type recurrenceUseCaseImpl struct {
	recurrenceRepo  RecurrenceRepository
	reservationRepo ReservationRepository
	scenarioRepo    ScenarioRepository
	reservations    ReservationUseCase
	custom          recurrence.CustomMatcher
	clock           clock.Clock
	logger          *slog.Logger
}

func NewRecurrenceUseCase(
	recurrenceRepo RecurrenceRepository,
	reservationRepo ReservationRepository,
	scenarioRepo ScenarioRepository,
	reservations ReservationUseCase,
	clock clock.Clock,
	logger *slog.Logger,
) RecurrenceUseCase {
	return &recurrenceUseCaseImpl{
		recurrenceRepo:  recurrenceRepo,
		reservationRepo: reservationRepo,
		scenarioRepo:    scenarioRepo,
		reservations:    reservations,
		clock:           clock,
		logger:          logger,
	}
}

func (u *recurrenceUseCaseImpl) CreateDefinition(ctx context.Context, params CreateDefinitionParams) (*recurrence.Definition, error) {
	if _, err := u.scenarioRepo.FindByID(ctx, params.ScenarioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrScenarioNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	def, err := recurrence.NewDefinition(recurrence.NewDefinitionParams{
		ScenarioID:     params.ScenarioID,
		RequesterID:    params.RequesterID,
		Pattern:        params.Pattern,
		RangeStart:     params.RangeStart,
		RangeEnd:       params.RangeEnd,
		TimeStart:      params.TimeStart,
		TimeEnd:        params.TimeEnd,
		Interval:       params.Interval,
		Weekdays:       params.Weekdays,
		DayOfMonth:     params.DayOfMonth,
		MaxOccurrences: params.MaxOccurrences,
	}, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDefinition)
	}

	if err := u.recurrenceRepo.Create(ctx, def); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return def, nil
}

func (u *recurrenceUseCaseImpl) GetDefinition(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error) {
	return u.findByID(ctx, id)
}

func (u *recurrenceUseCaseImpl) Deactivate(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error) {
	def, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	def.Deactivate(u.clock.Now())
	if err := u.recurrenceRepo.Update(ctx, def); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return def, nil
}

// PreviewConflicts expands the full range and flags each date that collides
// with an approved reservation. Pending ones are deliberately ignored here:
// the preview answers "could this series be approved as-is".
func (u *recurrenceUseCaseImpl) PreviewConflicts(ctx context.Context, id uuid.UUID) (*Preview, error) {
	def, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dates := def.Expand(u.custom)
	preview := &Preview{Entries: make([]PreviewEntry, 0, len(dates))}

	for _, date := range dates {
		slot, slotErr := def.SlotOn(date)
		if slotErr != nil {
			return nil, errs.Mark(slotErr, errs.ErrInvalidDefinition)
		}
		overlapping, findErr := u.reservationRepo.FindOverlapping(
			ctx, def.ScenarioID(), slot.Start(), slot.End(),
			[]reservation.Status{reservation.StatusApproved})
		if findErr != nil {
			return nil, errs.Mark(findErr, errs.ErrDatabaseOperationFailed)
		}
		preview.Entries = append(preview.Entries, PreviewEntry{
			Date:     date,
			Conflict: len(overlapping) > 0,
		})
	}

	if len(dates) > previewOccurrenceWarnThreshold {
		preview.Warnings = append(preview.Warnings,
			fmt.Sprintf("definition expands to %d occurrences", len(dates)))
	}
	if def.RangeEnd().Sub(def.RangeStart()) > previewRangeWarnDays*24*time.Hour {
		preview.Warnings = append(preview.Warnings, "definition range exceeds one year")
	}
	return preview, nil
}

func (u *recurrenceUseCaseImpl) MaterializeUpTo(ctx context.Context, id uuid.UUID, horizon time.Time) ([]uuid.UUID, error) {
	def, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !def.Active() {
		return nil, nil
	}

	now := u.clock.Now()
	var created []uuid.UUID
	for _, date := range def.ExpandUpTo(horizon, u.custom) {
		slot, slotErr := def.SlotOn(date)
		if slotErr != nil {
			return created, errs.Mark(slotErr, errs.ErrInvalidDefinition)
		}
		if slot.Start().Before(now) {
			continue
		}

		recurrenceID := def.ID()
		res, createErr := u.reservations.Create(ctx, CreateReservationParams{
			ScenarioID:   def.ScenarioID(),
			RequesterID:  def.RequesterID(),
			StartTime:    slot.Start(),
			EndTime:      slot.End(),
			RecurrenceID: &recurrenceID,
		})
		if createErr != nil {
			// An occupied window means the occurrence is either already
			// materialized or lost to another booking; both are skips, and
			// re-running stays duplicate-free.
			if errors.Is(createErr, errs.ErrReservationConflict) {
				u.logger.Debug("occurrence window occupied, skipping",
					"definition_id", def.ID(), "date", date.Format("2006-01-02"))
				continue
			}
			return created, createErr
		}
		created = append(created, res.ID())
	}
	return created, nil
}

// GeneratePendingForAllActive materializes every active definition up to the
// lookahead horizon. One broken definition must not starve the rest: per-
// definition errors are logged and counted, never propagated.
func (u *recurrenceUseCaseImpl) GeneratePendingForAllActive(ctx context.Context, lookaheadDays int) (*GenerateReport, error) {
	now := u.clock.Now()
	horizon := now.AddDate(0, 0, lookaheadDays)

	defs, err := u.recurrenceRepo.FindActive(ctx, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	report := &GenerateReport{Definitions: len(defs)}
	for _, def := range defs {
		created, genErr := u.MaterializeUpTo(ctx, def.ID(), horizon)
		report.Created += len(created)
		if genErr != nil {
			report.Failed++
			u.logger.Error("recurrence generation failed for definition",
				"definition_id", def.ID(), "error", genErr)
		}
	}
	return report, nil
}

func (u *recurrenceUseCaseImpl) findByID(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error) {
	def, err := u.recurrenceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrDefinitionNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return def, nil
}
