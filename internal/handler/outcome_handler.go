package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bouncer/internal/errors"
	"bouncer/internal/repository"
)

// OutcomeHandler exposes persisted batch outcomes.
type OutcomeHandler struct {
	outcomeRepo repository.OutcomeRepository
}

// NewOutcomeHandler creates a new outcome handler.
func NewOutcomeHandler(outcomeRepo repository.OutcomeRepository) *OutcomeHandler {
	return &OutcomeHandler{outcomeRepo: outcomeRepo}
}

// ListOutcomes godoc
// @Summary List recent batch outcomes, newest first
// @Tags outcomes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} model.ScoringOutcome
// @Failure 500 {object} errors.ErrorResponse
// @Router /outcomes [get]
func (h *OutcomeHandler) ListOutcomes(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	outcomes, err := h.outcomeRepo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, outcomes)
}
