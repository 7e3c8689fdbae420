package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resdto "scenario-booking/internal/handler/dto/response"
	"scenario-booking/internal/handler/httperr"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/usecase"
)

type AvailabilityHandler struct {
	availability usecase.AvailabilityUseCase
}

func NewAvailabilityHandler(availability usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Scenario availability calendar
// @Description Per-day slot occupancy for a scenario over an inclusive date range
// @Tags scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Param from query string true "Range start (2006-01-02)"
// @Param to query string true "Range end (2006-01-02)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /scenarios/{id}/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	scenarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid scenario id", nil)
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing 'from' date", nil)
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing 'to' date", nil)
		return
	}

	days, err := h.availability.BuildCalendar(c.Request.Context(), scenarioID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrScenarioNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Scenario not found", nil)
		case errors.Is(err, errs.ErrInvalidWindow):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "'to' date must not be before 'from' date", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCalendar(days))
}
