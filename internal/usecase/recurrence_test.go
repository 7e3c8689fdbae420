//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/domain/scenario"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/pkg/keymutex"
	"scenario-booking/internal/usecase"
)

type recurrenceFixture struct {
	uc       usecase.RecurrenceUseCase
	scenario *scenario.Scenario
	recRepo  *recurrenceRepoFake
	resRepo  *reservationRepoFake
	resUC    usecase.ReservationUseCase
	clock    *clock.MockClock
}

func newRecurrenceFixture(t *testing.T) *recurrenceFixture {
	t.Helper()
	s := mustScenario(t)
	scenRepo := newScenarioRepoFake(s)
	resRepo := newReservationRepoFake()
	recRepo := newRecurrenceRepoFake()
	mc := clock.NewMockClock(testNow)

	resUC := usecase.NewReservationUseCase(
		scenRepo, resRepo, &alertSchedulerFake{}, keymutex.New(), mc, testLogger())
	uc := usecase.NewRecurrenceUseCase(
		recRepo, resRepo, scenRepo, resUC, mc, testLogger())
	return &recurrenceFixture{uc: uc, scenario: s, recRepo: recRepo, resRepo: resRepo, resUC: resUC, clock: mc}
}

func (f *recurrenceFixture) dailyParams(t *testing.T, from, to time.Time) usecase.CreateDefinitionParams {
	t.Helper()
	start, err := recurrence.ParseTimeOfDay("10:00")
	require.NoError(t, err)
	end, err := recurrence.ParseTimeOfDay("12:00")
	require.NoError(t, err)
	return usecase.CreateDefinitionParams{
		ScenarioID:  f.scenario.ID(),
		RequesterID: uuid.New(),
		Pattern:     recurrence.PatternDaily,
		RangeStart:  from,
		RangeEnd:    to,
		TimeStart:   start,
		TimeEnd:     end,
	}
}

func TestCreateDefinition(t *testing.T) {
	ctx := context.Background()

	t.Run("valid definition is stored active", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t,
			day(2026, 3, 11), day(2026, 3, 20)))
		require.NoError(t, err)
		assert.True(t, def.Active())

		stored, err := f.uc.GetDefinition(ctx, def.ID())
		require.NoError(t, err)
		assert.Equal(t, def.ID(), stored.ID())
	})

	t.Run("unknown scenario", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		params := f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 20))
		params.ScenarioID = uuid.New()
		_, err := f.uc.CreateDefinition(ctx, params)
		assert.ErrorIs(t, err, errs.ErrScenarioNotFound)
	})

	t.Run("domain validation surfaces as invalid definition", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		params := f.dailyParams(t, day(2026, 3, 20), day(2026, 3, 11))
		_, err := f.uc.CreateDefinition(ctx, params)
		assert.ErrorIs(t, err, errs.ErrInvalidDefinition)
	})
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()
	f := newRecurrenceFixture(t)

	def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 20)))
	require.NoError(t, err)

	deactivated, err := f.uc.Deactivate(ctx, def.ID())
	require.NoError(t, err)
	assert.False(t, deactivated.Active())

	created, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 20))
	require.NoError(t, err)
	assert.Empty(t, created, "inactive definitions generate nothing")
}

func TestMaterializeUpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("books every future occurrence up to the horizon", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
		require.NoError(t, err)

		created, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 14))
		require.NoError(t, err)
		assert.Len(t, created, 4) // 11th through 14th

		res, err := f.resRepo.FindByID(ctx, created[0])
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, res.Status())
		require.NotNil(t, res.RecurrenceID())
		assert.Equal(t, def.ID(), *res.RecurrenceID())
	})

	t.Run("is idempotent across repeated runs", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
		require.NoError(t, err)

		first, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 14))
		require.NoError(t, err)
		require.Len(t, first, 4)

		second, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 14))
		require.NoError(t, err)
		assert.Empty(t, second, "already materialized dates are skipped")
	})

	t.Run("moving horizon only adds the delta", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
		require.NoError(t, err)

		_, err = f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 14))
		require.NoError(t, err)

		delta, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 16))
		require.NoError(t, err)
		assert.Len(t, delta, 2) // 15th and 16th
	})

	t.Run("skips occurrences whose start is already past", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		// Range opens two days before "now" (2026-03-10 09:00). The slot on
		// the 10th starts 10:00, which is still future, so only the 8th and
		// 9th are skipped.
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 8), day(2026, 3, 31)))
		require.NoError(t, err)

		created, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 11))
		require.NoError(t, err)
		assert.Len(t, created, 2) // 10th and 11th
	})

	t.Run("occupied windows are skipped, not errors", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
		require.NoError(t, err)

		// A manual booking already holds the window on the 12th.
		_, err = f.resUC.Create(ctx, usecase.CreateReservationParams{
			ScenarioID:  f.scenario.ID(),
			RequesterID: uuid.New(),
			StartTime:   time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 3, 12, 13, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		created, err := f.uc.MaterializeUpTo(ctx, def.ID(), day(2026, 3, 13))
		require.NoError(t, err)
		assert.Len(t, created, 2, "11th and 13th; the occupied 12th is skipped")
	})

	t.Run("unknown definition", func(t *testing.T) {
		f := newRecurrenceFixture(t)
		_, err := f.uc.MaterializeUpTo(ctx, uuid.New(), day(2026, 3, 14))
		assert.ErrorIs(t, err, errs.ErrDefinitionNotFound)
	})
}

func TestPreviewConflicts(t *testing.T) {
	ctx := context.Background()
	f := newRecurrenceFixture(t)

	def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 13)))
	require.NoError(t, err)

	// Approved booking colliding with the occurrence on the 12th; a pending
	// one on the 13th must not count.
	approved, err := f.resUC.Create(ctx, usecase.CreateReservationParams{
		ScenarioID:  f.scenario.ID(),
		RequesterID: uuid.New(),
		StartTime:   time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = f.resUC.Approve(ctx, approved.ID())
	require.NoError(t, err)

	_, err = f.resUC.Create(ctx, usecase.CreateReservationParams{
		ScenarioID:  f.scenario.ID(),
		RequesterID: uuid.New(),
		StartTime:   time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	preview, err := f.uc.PreviewConflicts(ctx, def.ID())
	require.NoError(t, err)
	require.Len(t, preview.Entries, 3)
	assert.False(t, preview.Entries[0].Conflict)
	assert.True(t, preview.Entries[1].Conflict)
	assert.False(t, preview.Entries[2].Conflict, "pending reservations do not flag the preview")
	assert.Empty(t, preview.Warnings)
}

func TestPreviewWarnings(t *testing.T) {
	ctx := context.Background()
	f := newRecurrenceFixture(t)

	// 400-day daily definition: capped at 365 occurrences, which trips both
	// the occurrence-count and the range warning.
	def, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2027, 4, 15)))
	require.NoError(t, err)

	preview, err := f.uc.PreviewConflicts(ctx, def.ID())
	require.NoError(t, err)
	assert.Len(t, preview.Entries, 365)
	require.Len(t, preview.Warnings, 2)
	assert.Equal(t, "definition expands to 365 occurrences", preview.Warnings[0])
	assert.Equal(t, "definition range exceeds one year", preview.Warnings[1])
}

func TestGeneratePendingForAllActive(t *testing.T) {
	ctx := context.Background()
	f := newRecurrenceFixture(t)

	_, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
	require.NoError(t, err)
	second, err := f.uc.CreateDefinition(ctx, f.dailyParams(t, day(2026, 3, 11), day(2026, 3, 31)))
	require.NoError(t, err)

	report, err := f.uc.GeneratePendingForAllActive(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Definitions)
	// Identical definitions compete for the same windows: the first one in
	// wins each date, the second books nothing. Horizon is now+3d = the 13th.
	assert.Equal(t, 3, report.Created)
	assert.Zero(t, report.Failed)

	// A second run over the same horizon adds nothing.
	report, err = f.uc.GeneratePendingForAllActive(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, report.Created)

	_ = second
}
