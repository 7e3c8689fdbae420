package components

import (
	"go.uber.org/fx"

	repo_impl "scenario-booking/internal/infra/repository"
	"scenario-booking/internal/usecase"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewScenarioRepository,
			fx.As(new(usecase.ScenarioRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(usecase.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewRecurrenceRepository,
			fx.As(new(usecase.RecurrenceRepository)),
		),
		fx.Annotate(
			repo_impl.NewAlertRepository,
			fx.As(new(usecase.AlertRepository)),
		),
	),
)
