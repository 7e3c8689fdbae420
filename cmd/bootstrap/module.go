package bootstrap

import (
	"go.uber.org/fx"

	"scenario-booking/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	components.RepositoryModule,
	components.NotifierModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)
