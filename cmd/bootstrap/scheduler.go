package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"scenario-booking/internal/scheduler"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.New,
	),
	fx.Invoke(registerScheduler),
)

func registerScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
