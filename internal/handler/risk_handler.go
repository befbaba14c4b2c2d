package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bouncer/internal/errors"
	"bouncer/internal/service"
)

// RiskHandler handles batch risk operations.
type RiskHandler struct {
	riskService    service.RiskService
	scannerService service.ScannerService
}

// NewRiskHandler creates a new risk handler.
func NewRiskHandler(riskService service.RiskService, scannerService service.ScannerService) *RiskHandler {
	return &RiskHandler{riskService: riskService, scannerService: scannerService}
}

// CalculateRequest carries an optional prompt override for the batch.
type CalculateRequest struct {
	Prompt string `json:"prompt"`
}

// ScanRequest carries an optional high-risk threshold.
type ScanRequest struct {
	Threshold *int `json:"threshold" validate:"omitempty,min=0,max=100"`
}

// CalculateAll godoc
// @Summary Run the batch risk calculation over all profiles needing scoring
// @Tags risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CalculateRequest false "Optional prompt override"
// @Success 200 {object} service.BatchSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /risk/calculate [post]
func (h *RiskHandler) CalculateAll(c echo.Context) error {
	var req CalculateRequest
	// An empty body means defaults; binding errors are real malformed JSON.
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	summary, err := h.riskService.CalculateAll(c.Request().Context(), req.Prompt)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// Scan godoc
// @Summary Scan for profiles above the high-risk threshold and dispatch alerts
// @Tags risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScanRequest false "Optional threshold (default 50)"
// @Success 200 {object} service.ScanSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /risk/scan [post]
func (h *RiskHandler) Scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	threshold := service.DefaultHighRiskThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	summary, err := h.scannerService.Scan(c.Request().Context(), threshold)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}
