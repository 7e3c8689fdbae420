package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/alert"
	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/domain/scenario"
)

// Persistence ports. Implementations live in internal/infra/repository; the
// storage layer is expected to answer FindOverlapping with an indexed range
// query so conflict checks stay interactive.

type ScenarioRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*scenario.Scenario, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindOverlapping returns reservations on the scenario whose [startAt,
	// endAt) window intersects [start, end) and whose status is in statuses.
	FindOverlapping(ctx context.Context, scenarioID uuid.UUID, start, end time.Time, statuses []reservation.Status) ([]*reservation.Reservation, error)
}

type RecurrenceRepository interface {
	Create(ctx context.Context, def *recurrence.Definition) error
	Update(ctx context.Context, def *recurrence.Definition) error
	FindByID(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error)
	// FindActive returns active definitions whose range end has not passed asOf.
	FindActive(ctx context.Context, asOf time.Time) ([]*recurrence.Definition, error)
}

type AlertRepository interface {
	Create(ctx context.Context, a *alert.Alert) error
	Update(ctx context.Context, a *alert.Alert) error
	FindByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	// FindDue returns unsent alerts with scheduledAt <= now, oldest first.
	FindDue(ctx context.Context, now time.Time) ([]*alert.Alert, error)
	// FindUnsentByReservation returns every alert for the reservation that has
	// not reached sent (pending, scheduled or failed).
	FindUnsentByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error)
	// FindExpired returns unsent alerts whose scheduledAt is strictly before now.
	FindExpired(ctx context.Context, now time.Time) ([]*alert.Alert, error)
}

// Notification channel collaborators. Any returned error counts as a dispatch
// failure; implementations are black boxes and must honor ctx deadlines.

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type RealtimeSender interface {
	SendRealtime(ctx context.Context, userID uuid.UUID, payload []byte) error
}
