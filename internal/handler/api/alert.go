package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "scenario-booking/internal/handler/dto/response"
	"scenario-booking/internal/handler/httperr"
	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/usecase"
)

type AlertHandler struct {
	alerts usecase.AlertUseCase
	clock  clock.Clock
}

func NewAlertHandler(alerts usecase.AlertUseCase, clock clock.Clock) *AlertHandler {
	return &AlertHandler{alerts: alerts, clock: clock}
}

// @Summary Get alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} resdto.AlertResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /alerts/{id} [get]
func (h *AlertHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.alerts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAlert(a))
}

// @Summary Process due alerts
// @Description Dispatch every unsent alert whose scheduled time has arrived
// @Tags alerts
// @Produce json
// @Success 200 {object} resdto.ProcessReportResponse
// @Router /alerts/process [post]
func (h *AlertHandler) Process(c *gin.Context) {
	report, err := h.alerts.ProcessDue(c.Request.Context(), h.clock.Now())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProcessReport(report))
}

// @Summary Cleanup expired alerts
// @Description Cancel past-due alerts that were never delivered
// @Tags alerts
// @Produce json
// @Success 200 {object} resdto.SweepReportResponse
// @Router /alerts/cleanup-expired [post]
func (h *AlertHandler) CleanupExpired(c *gin.Context) {
	report, err := h.alerts.SweepExpired(c.Request.Context(), h.clock.Now())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSweepReport(report))
}

// @Summary Resend failed alert
// @Description Re-arm a failed alert and attempt delivery immediately
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} resdto.AlertResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /alerts/{id}/resend [post]
func (h *AlertHandler) Resend(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.alerts.Resend(c.Request.Context(), id)
	if err != nil {
		h.respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAlert(a))
}

// @Summary Cancel alert
// @Description Drop an undelivered alert; sent alerts cannot be cancelled
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} resdto.AlertResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /alerts/{id} [delete]
func (h *AlertHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.alerts.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAlert(a))
}

func (h *AlertHandler) respondAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrAlertNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Alert not found", nil)
	case errors.Is(err, errs.ErrAlertNotFailed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Only failed alerts can be resent", nil)
	case errors.Is(err, errs.ErrAlertAlreadySent):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Sent alerts cannot be cancelled", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
