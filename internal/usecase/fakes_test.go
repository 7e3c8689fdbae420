//go:build unit

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"scenario-booking/internal/domain/alert"
	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/domain/scenario"
	"scenario-booking/internal/infra"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// In-memory repository fakes backing the usecase tests. Each mirrors the
// error classification of the real pgx implementations so the usecases see
// the same RepositoryError kinds.

type scenarioRepoFake struct {
	mu        sync.Mutex
	scenarios map[uuid.UUID]*scenario.Scenario
}

func newScenarioRepoFake(scenarios ...*scenario.Scenario) *scenarioRepoFake {
	f := &scenarioRepoFake{scenarios: make(map[uuid.UUID]*scenario.Scenario)}
	for _, s := range scenarios {
		f.scenarios[s.ID()] = s
	}
	return f
}

func (f *scenarioRepoFake) FindByID(_ context.Context, id uuid.UUID) (*scenario.Scenario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scenarios[id]
	if !ok {
		return nil, infra.WrapRepoErr("scenario not found", nil, infra.KindNotFound)
	}
	return s, nil
}

type reservationRepoFake struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
	createErr    error
	updateErr    error
}

func newReservationRepoFake() *reservationRepoFake {
	return &reservationRepoFake{reservations: make(map[uuid.UUID]*reservation.Reservation)}
}

func (f *reservationRepoFake) Create(_ context.Context, res *reservation.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations[res.ID()] = res
	return nil
}

func (f *reservationRepoFake) Update(_ context.Context, res *reservation.Reservation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	f.reservations[res.ID()] = res
	return nil
}

func (f *reservationRepoFake) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (f *reservationRepoFake) FindOverlapping(_ context.Context, scenarioID uuid.UUID, start, end time.Time, statuses []reservation.Status) ([]*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	window, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	var out []*reservation.Reservation
	for _, res := range f.reservations {
		if res.ScenarioID() != scenarioID || !res.Slot().Overlaps(window) {
			continue
		}
		for _, s := range statuses {
			if res.Status() == s {
				out = append(out, res)
				break
			}
		}
	}
	return out, nil
}

type recurrenceRepoFake struct {
	mu          sync.Mutex
	definitions map[uuid.UUID]*recurrence.Definition
}

func newRecurrenceRepoFake() *recurrenceRepoFake {
	return &recurrenceRepoFake{definitions: make(map[uuid.UUID]*recurrence.Definition)}
}

func (f *recurrenceRepoFake) Create(_ context.Context, def *recurrence.Definition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.definitions[def.ID()] = def
	return nil
}

func (f *recurrenceRepoFake) Update(_ context.Context, def *recurrence.Definition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.definitions[def.ID()]; !ok {
		return infra.WrapRepoErr("definition not found", nil, infra.KindNotFound)
	}
	f.definitions[def.ID()] = def
	return nil
}

func (f *recurrenceRepoFake) FindByID(_ context.Context, id uuid.UUID) (*recurrence.Definition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	def, ok := f.definitions[id]
	if !ok {
		return nil, infra.WrapRepoErr("definition not found", nil, infra.KindNotFound)
	}
	return def, nil
}

func (f *recurrenceRepoFake) FindActive(_ context.Context, asOf time.Time) ([]*recurrence.Definition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*recurrence.Definition
	for _, def := range f.definitions {
		if def.Active() && !def.RangeEnd().Before(asOf.Truncate(24*time.Hour)) {
			out = append(out, def)
		}
	}
	return out, nil
}

type alertRepoFake struct {
	mu        sync.Mutex
	alerts    map[uuid.UUID]*alert.Alert
	createErr error
}

func newAlertRepoFake() *alertRepoFake {
	return &alertRepoFake{alerts: make(map[uuid.UUID]*alert.Alert)}
}

func (f *alertRepoFake) Create(_ context.Context, a *alert.Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts[a.ID()] = a
	return nil
}

func (f *alertRepoFake) Update(_ context.Context, a *alert.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.alerts[a.ID()]; !ok {
		return infra.WrapRepoErr("alert not found", nil, infra.KindNotFound)
	}
	f.alerts[a.ID()] = a
	return nil
}

func (f *alertRepoFake) FindByID(_ context.Context, id uuid.UUID) (*alert.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok {
		return nil, infra.WrapRepoErr("alert not found", nil, infra.KindNotFound)
	}
	return a, nil
}

func (f *alertRepoFake) FindDue(_ context.Context, now time.Time) ([]*alert.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alert.Alert
	for _, a := range f.alerts {
		if a.IsDue(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *alertRepoFake) FindUnsentByReservation(_ context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alert.Alert
	for _, a := range f.alerts {
		if a.ReservationID() != reservationID {
			continue
		}
		if a.Status().IsUnsent() || a.Status() == alert.StatusFailed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *alertRepoFake) FindExpired(_ context.Context, now time.Time) ([]*alert.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alert.Alert
	for _, a := range f.alerts {
		if a.Status().IsUnsent() && a.ScheduledAt().Before(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *alertRepoFake) byStatus(s alert.Status) []*alert.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alert.Alert
	for _, a := range f.alerts {
		if a.Status() == s {
			out = append(out, a)
		}
	}
	return out
}

type emailSenderFake struct {
	mu   sync.Mutex
	sent []string // recipients
	err  error
}

func (f *emailSenderFake) SendEmail(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type realtimeSenderFake struct {
	mu   sync.Mutex
	sent []uuid.UUID
	err  error
}

func (f *realtimeSenderFake) SendRealtime(_ context.Context, userID uuid.UUID, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, userID)
	return nil
}

// alertSchedulerFake records lifecycle callbacks from the reservation usecase.
type alertSchedulerFake struct {
	scheduled   []uuid.UUID
	cancelled   []uuid.UUID
	scheduleErr error
}

func (f *alertSchedulerFake) ScheduleFor(_ context.Context, res *reservation.Reservation) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = append(f.scheduled, res.ID())
	return nil
}

func (f *alertSchedulerFake) CancelForReservation(_ context.Context, reservationID uuid.UUID) error {
	f.cancelled = append(f.cancelled, reservationID)
	return nil
}
