//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-booking/internal/domain/reservation"
)

var base = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func slot(t *testing.T, startHour, endHour int) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(
		base.Add(time.Duration(startHour)*time.Hour),
		base.Add(time.Duration(endHour)*time.Hour),
	)
	require.NoError(t, err)
	return s
}

func newPending(t *testing.T, startHour, endHour int) *reservation.Reservation {
	t.Helper()
	return reservation.NewReservation(uuid.New(), uuid.New(), slot(t, startHour, endHour), nil, base)
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("start must be before end", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(base.Add(2*time.Hour), base.Add(time.Hour))
		assert.ErrorIs(t, err, reservation.ErrInvalidWindow)

		_, err = reservation.NewTimeSlot(base, base)
		assert.ErrorIs(t, err, reservation.ErrInvalidWindow)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     [2]int
		overlaps bool
	}{
		{"identical windows", [2]int{10, 12}, [2]int{10, 12}, true},
		{"partial overlap", [2]int{10, 12}, [2]int{11, 13}, true},
		{"contained window", [2]int{10, 14}, [2]int{11, 12}, true},
		{"back to back does not overlap", [2]int{10, 12}, [2]int{12, 13}, false},
		{"disjoint windows", [2]int{8, 9}, [2]int{12, 13}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := slot(t, tc.a[0], tc.a[1])
			b := slot(t, tc.b[0], tc.b[1])
			assert.Equal(t, tc.overlaps, a.Overlaps(b))
			assert.Equal(t, tc.overlaps, b.Overlaps(a))
		})
	}
}

func TestReservationTransitions(t *testing.T) {
	now := base.Add(time.Hour)

	t.Run("new reservation is pending and blocking", func(t *testing.T) {
		res := newPending(t, 10, 12)
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.IsBlocking())
	})

	t.Run("pending can be approved", func(t *testing.T) {
		res := newPending(t, 10, 12)
		require.NoError(t, res.Approve(now))
		assert.Equal(t, reservation.StatusApproved, res.Status())
		assert.True(t, res.IsBlocking())
	})

	t.Run("pending can be rejected with a reason", func(t *testing.T) {
		res := newPending(t, 10, 12)
		require.NoError(t, res.Reject("double booked", now))
		assert.Equal(t, reservation.StatusRejected, res.Status())
		require.NotNil(t, res.RejectionReason())
		assert.Equal(t, "double booked", *res.RejectionReason())
		assert.False(t, res.IsBlocking())
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		res := newPending(t, 10, 12)
		assert.ErrorIs(t, res.Reject("", now), reservation.ErrEmptyReason)
		assert.Equal(t, reservation.StatusPending, res.Status())
	})

	t.Run("approved can be cancelled", func(t *testing.T) {
		res := newPending(t, 10, 12)
		require.NoError(t, res.Approve(now))
		changed, err := res.Cancel(now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, reservation.StatusCancelled, res.Status())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		res := newPending(t, 10, 12)
		changed, err := res.Cancel(now)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = res.Cancel(now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, reservation.StatusCancelled, res.Status())
	})

	t.Run("terminal states refuse further transitions", func(t *testing.T) {
		rejected := newPending(t, 10, 12)
		require.NoError(t, rejected.Reject("no", now))
		assert.ErrorIs(t, rejected.Approve(now), reservation.ErrInvalidTransition)
		_, err := rejected.Cancel(now)
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)

		approved := newPending(t, 10, 12)
		require.NoError(t, approved.Approve(now))
		assert.ErrorIs(t, approved.Approve(now), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, approved.Reject("late", now), reservation.ErrInvalidTransition)
	})
}

func TestConflictsWith(t *testing.T) {
	scenarioID := uuid.New()

	a := reservation.NewReservation(scenarioID, uuid.New(), slot(t, 10, 12), nil, base)
	b := reservation.NewReservation(scenarioID, uuid.New(), slot(t, 11, 13), nil, base)
	c := reservation.NewReservation(scenarioID, uuid.New(), slot(t, 12, 13), nil, base)
	other := reservation.NewReservation(uuid.New(), uuid.New(), slot(t, 10, 12), nil, base)

	assert.True(t, a.ConflictsWith(b))
	assert.False(t, a.ConflictsWith(c), "back-to-back windows must not conflict")
	assert.True(t, b.ConflictsWith(c))
	assert.False(t, a.ConflictsWith(other), "different scenarios never conflict")
}

func TestStatusStateMachine(t *testing.T) {
	for _, s := range reservation.AllStatuses() {
		assert.True(t, s.IsValid())
	}

	assert.True(t, reservation.StatusPending.CanTransitionTo(reservation.StatusApproved))
	assert.True(t, reservation.StatusPending.CanTransitionTo(reservation.StatusRejected))
	assert.True(t, reservation.StatusPending.CanTransitionTo(reservation.StatusCancelled))
	assert.True(t, reservation.StatusApproved.CanTransitionTo(reservation.StatusCancelled))

	assert.False(t, reservation.StatusApproved.CanTransitionTo(reservation.StatusRejected))
	assert.False(t, reservation.StatusRejected.CanTransitionTo(reservation.StatusApproved))
	assert.False(t, reservation.StatusCancelled.CanTransitionTo(reservation.StatusPending))

	assert.True(t, reservation.StatusRejected.IsTerminal())
	assert.True(t, reservation.StatusCancelled.IsTerminal())
	assert.False(t, reservation.StatusApproved.IsTerminal())
}
