package components

import (
	"go.uber.org/fx"

	"scenario-booking/internal/handler"
	"scenario-booking/internal/handler/api"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewRecurrenceHandler,
		api.NewAlertHandler,
	),
	fx.Invoke(handler.NewRouter),
)
