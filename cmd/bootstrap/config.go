package bootstrap

import (
	"go.uber.org/fx"

	"scenario-booking/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.JobsConfig { return cfg.Jobs },
		func(cfg config.Config) config.CalendarConfig { return cfg.Calendar },
	),
)
