package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "scenario-booking/internal/handler/dto/request"
	resdto "scenario-booking/internal/handler/dto/response"
	"scenario-booking/internal/handler/httperr"
	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/pkg/errs"
	"scenario-booking/internal/usecase"
)

type RecurrenceHandler struct {
	recurrences usecase.RecurrenceUseCase
	jobsCfg     config.JobsConfig
}

func NewRecurrenceHandler(recurrences usecase.RecurrenceUseCase, jobsCfg config.JobsConfig) *RecurrenceHandler {
	return &RecurrenceHandler{recurrences: recurrences, jobsCfg: jobsCfg}
}

// @Summary Create recurrence definition
// @Description Register a recurring reservation rule for a scenario
// @Tags recurrences
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRecurrenceRequest true "Recurrence definition"
// @Success 201 {object} resdto.RecurrenceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /recurrences [post]
func (h *RecurrenceHandler) Create(c *gin.Context) {
	var req reqdto.CreateRecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	def, err := h.recurrences.CreateDefinition(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrScenarioNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Scenario not found", nil)
		case errors.Is(err, errs.ErrInvalidDefinition):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromDefinition(def))
}

// @Summary Get recurrence definition
// @Tags recurrences
// @Produce json
// @Param id path string true "Definition ID"
// @Success 200 {object} resdto.RecurrenceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /recurrences/{id} [get]
func (h *RecurrenceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	def, err := h.recurrences.GetDefinition(c.Request.Context(), id)
	if err != nil {
		h.respondDefinitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDefinition(def))
}

// @Summary Preview recurrence conflicts
// @Description Expand the definition and flag dates colliding with approved reservations
// @Tags recurrences
// @Produce json
// @Param id path string true "Definition ID"
// @Success 200 {object} resdto.PreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /recurrences/{id}/preview [get]
func (h *RecurrenceHandler) Preview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	preview, err := h.recurrences.PreviewConflicts(c.Request.Context(), id)
	if err != nil {
		h.respondDefinitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPreview(preview))
}

// @Summary Deactivate recurrence definition
// @Description Stop future materialization; already-created reservations are untouched
// @Tags recurrences
// @Produce json
// @Param id path string true "Definition ID"
// @Success 200 {object} resdto.RecurrenceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /recurrences/{id}/deactivate [post]
func (h *RecurrenceHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	def, err := h.recurrences.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.respondDefinitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDefinition(def))
}

// @Summary Generate pending reservations
// @Description Materialize occurrences for all active definitions up to the lookahead horizon
// @Tags recurrences
// @Produce json
// @Success 200 {object} resdto.GenerateReportResponse
// @Router /recurrences/generate-pending [post]
func (h *RecurrenceHandler) GeneratePending(c *gin.Context) {
	report, err := h.recurrences.GeneratePendingForAllActive(c.Request.Context(), h.jobsCfg.LookaheadDays)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGenerateReport(report))
}

func (h *RecurrenceHandler) respondDefinitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrDefinitionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Recurrence definition not found", nil)
	case errors.Is(err, errs.ErrInvalidDefinition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
