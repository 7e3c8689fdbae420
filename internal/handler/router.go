package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"scenario-booking/internal/handler/api"
	"scenario-booking/internal/handler/middleware"
	"scenario-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	availabilityHandler *api.AvailabilityHandler,
	recurrenceHandler *api.RecurrenceHandler,
	alertHandler *api.AlertHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, reservationHandler, availabilityHandler, recurrenceHandler, alertHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	availabilityHandler *api.AvailabilityHandler,
	recurrenceHandler *api.RecurrenceHandler,
	alertHandler *api.AlertHandler,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: reservationHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: reservationHandler.Reject},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
			})
		}

		scenarios := apiGroup.Group("/scenarios")
		{
			addRoutes(scenarios, []route{
				{Method: http.MethodGet, Path: "/:id/calendar", Handler: availabilityHandler.Calendar},
			})
		}

		recurrences := apiGroup.Group("/recurrences")
		{
			addRoutes(recurrences, []route{
				{Method: http.MethodPost, Path: "", Handler: recurrenceHandler.Create},
				{Method: http.MethodPost, Path: "/generate-pending", Handler: recurrenceHandler.GeneratePending},
				{Method: http.MethodGet, Path: "/:id", Handler: recurrenceHandler.Get},
				{Method: http.MethodGet, Path: "/:id/preview", Handler: recurrenceHandler.Preview},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: recurrenceHandler.Deactivate},
			})
		}

		alerts := apiGroup.Group("/alerts")
		{
			addRoutes(alerts, []route{
				{Method: http.MethodPost, Path: "/process", Handler: alertHandler.Process},
				{Method: http.MethodPost, Path: "/cleanup-expired", Handler: alertHandler.CleanupExpired},
				{Method: http.MethodGet, Path: "/:id", Handler: alertHandler.Get},
				{Method: http.MethodPost, Path: "/:id/resend", Handler: alertHandler.Resend},
				{Method: http.MethodDelete, Path: "/:id", Handler: alertHandler.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
