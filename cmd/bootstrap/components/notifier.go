package components

import (
	"go.uber.org/fx"

	"scenario-booking/internal/infra/notifier"
	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/usecase"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		notifier.NewRedisClient,
		fx.Annotate(
			notifier.NewSMTPSender,
			fx.As(new(usecase.EmailSender)),
		),
		fx.Annotate(
			notifier.NewRedisRealtimeSender,
			fx.As(new(usecase.RealtimeSender)),
		),
	),
)
