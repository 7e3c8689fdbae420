package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/pkg/errs"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
)

type CalendarSlot struct {
	Start        time.Time
	End          time.Time
	Status       SlotStatus
	Reservations []*reservation.Reservation
}

// CalendarDay is one day of the availability projection. Past days carry no
// slot data.
type CalendarDay struct {
	Date  time.Time
	Past  bool
	Slots []CalendarSlot
}

type AvailabilityUseCase interface {
	BuildCalendar(ctx context.Context, scenarioID uuid.UUID, from, to time.Time) ([]CalendarDay, error)
}

type availabilityUseCaseImpl struct {
	scenarioRepo    ScenarioRepository
	reservationRepo ReservationRepository
	clock           clock.Clock
	cfg             config.CalendarConfig
}

func NewAvailabilityUseCase(
	scenarioRepo ScenarioRepository,
	reservationRepo ReservationRepository,
	clock clock.Clock,
	cfg config.CalendarConfig,
) AvailabilityUseCase {
	return &availabilityUseCaseImpl{
		scenarioRepo:    scenarioRepo,
		reservationRepo: reservationRepo,
		clock:           clock,
		cfg:             cfg,
	}
}

// BuildCalendar projects per-day occupancy for the scenario over [from, to]
// (inclusive dates). Pure read: it reuses the same overlap predicate as the
// booking path against pending and approved reservations.
func (u *availabilityUseCaseImpl) BuildCalendar(ctx context.Context, scenarioID uuid.UUID, from, to time.Time) ([]CalendarDay, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return nil, errs.ErrInvalidWindow
	}

	if _, err := u.scenarioRepo.FindByID(ctx, scenarioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrScenarioNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	today := truncateToDay(u.clock.Now())

	var days []CalendarDay
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if date.Before(today) {
			days = append(days, CalendarDay{Date: date, Past: true})
			continue
		}

		slots, err := u.buildDay(ctx, scenarioID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, CalendarDay{Date: date, Slots: slots})
	}
	return days, nil
}

func (u *availabilityUseCaseImpl) buildDay(ctx context.Context, scenarioID uuid.UUID, date time.Time) ([]CalendarSlot, error) {
	var slots []CalendarSlot
	for hour := u.cfg.DayStartHour; hour+u.cfg.SlotDurationHours <= u.cfg.DayEndHour; hour += u.cfg.SlotDurationHours {
		start := date.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Duration(u.cfg.SlotDurationHours) * time.Hour)

		occupying, err := u.reservationRepo.FindOverlapping(
			ctx, scenarioID, start, end, reservation.BlockingStatuses())
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		status := SlotAvailable
		if len(occupying) > 0 {
			status = SlotReserved
		}
		slots = append(slots, CalendarSlot{
			Start:        start,
			End:          end,
			Status:       status,
			Reservations: occupying,
		})
	}
	return slots, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
