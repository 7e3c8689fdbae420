package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "scenario-booking/internal/handler/dto/request"
	resdto "scenario-booking/internal/handler/dto/response"
	"scenario-booking/internal/handler/httperr"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/usecase"
)

type ReservationHandler struct {
	reservations usecase.ReservationUseCase
}

func NewReservationHandler(reservations usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// @Summary Create reservation
// @Description Book a time window on a scenario; conflicting windows are rejected
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.reservations.Create(c.Request.Context(), usecase.CreateReservationParams{
		ScenarioID:  req.ScenarioID,
		RequesterID: req.RequesterID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrScenarioNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Scenario not found", nil)
		case errors.Is(err, errs.ErrInvalidWindow):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Start time must be before end time", nil)
		case errors.Is(err, errs.ErrReservationConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Time window is already reserved", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res, err := h.reservations.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Approve reservation
// @Description Approve a pending reservation and schedule its reminders
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res, err := h.reservations.Approve(c.Request.Context(), id)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Reject reservation
// @Description Reject a pending reservation with a reason
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest true "Rejection reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.RejectReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Rejection reason is required", nil)
		return
	}

	res, err := h.reservations.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cancel reservation
// @Description Cancel a pending or approved reservation; repeat calls are no-ops
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res, err := h.reservations.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, errs.ErrInvalidStateTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation status does not allow this transition", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
