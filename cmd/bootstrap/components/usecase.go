package components

import (
	"log/slog"

	"go.uber.org/fx"

	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/pkg/keymutex"
	"scenario-booking/internal/usecase"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		keymutex.New,
		NewAlertUseCase,
		func(u usecase.AlertUseCase) usecase.AlertScheduler { return u },
		usecase.NewReservationUseCase,
		usecase.NewRecurrenceUseCase,
		usecase.NewAvailabilityUseCase,
	),
)

func NewAlertUseCase(
	alertRepo usecase.AlertRepository,
	reservationRepo usecase.ReservationRepository,
	email usecase.EmailSender,
	realtime usecase.RealtimeSender,
	jobsCfg config.JobsConfig,
	clock clock.Clock,
	logger *slog.Logger,
) usecase.AlertUseCase {
	return usecase.NewAlertUseCase(
		alertRepo, reservationRepo, email, realtime, jobsCfg.DispatchTimeout, clock, logger)
}
