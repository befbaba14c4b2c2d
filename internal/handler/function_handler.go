package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bouncer/internal/errors"
	"bouncer/internal/model"
	"bouncer/internal/service"
)

// FunctionHandler hosts the relay endpoints under /functions. Their request
// and response shapes match the serverless functions they replace, so
// existing clients keep working unchanged.
type FunctionHandler struct {
	riskService  service.RiskService
	alertService service.AlertService
}

// NewFunctionHandler creates a new function handler.
func NewFunctionHandler(riskService service.RiskService, alertService service.AlertService) *FunctionHandler {
	return &FunctionHandler{riskService: riskService, alertService: alertService}
}

// RecordRequest is the relay wire envelope: one profile record plus an
// optional threshold.
type RecordRequest struct {
	Record            *model.Profile `json:"record"`
	HighRiskThreshold *int           `json:"highRiskThreshold"`
}

// RelayResponse is the relay reply envelope. Success is a pointer because the
// terminal-message and bad-request envelopes omit it entirely, while failure
// envelopes carry an explicit false.
type RelayResponse struct {
	Success *bool       `json:"success,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func relaySuccess(v bool) *bool { return &v }

// CalculateRisk godoc
// @Summary Score one pushed profile record
// @Tags functions
// @Accept json
// @Produce json
// @Param request body RecordRequest true "Profile record"
// @Success 200 {object} RelayResponse
// @Failure 400 {object} RelayResponse
// @Failure 500 {object} RelayResponse
// @Router /functions/calculate-risk [post]
func (h *FunctionHandler) CalculateRisk(c echo.Context) error {
	var req RecordRequest
	if err := c.Bind(&req); err != nil || req.Record == nil {
		return c.JSON(http.StatusBadRequest, RelayResponse{Error: "Missing profile data"})
	}

	result, err := h.riskService.CalculateOne(c.Request().Context(), req.Record)
	if err != nil {
		if stderrors.Is(err, errors.ErrAlreadyScored) {
			return c.JSON(http.StatusOK, RelayResponse{Message: "Risk level already calculated"})
		}
		return c.JSON(http.StatusInternalServerError, RelayResponse{Success: relaySuccess(false), Error: err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"risk_score":    result.RiskScore,
		"explanation":   result.Explanation,
		"raw_summaries": result.RawSummaries,
	})
}

// RiskAlert godoc
// @Summary Evaluate one profile against the high-risk threshold and email an alert
// @Tags functions
// @Accept json
// @Produce json
// @Param request body RecordRequest true "Profile record with optional threshold"
// @Success 200 {object} RelayResponse
// @Failure 400 {object} RelayResponse
// @Failure 500 {object} RelayResponse
// @Router /functions/risk-alert [post]
func (h *FunctionHandler) RiskAlert(c echo.Context) error {
	var req RecordRequest
	if err := c.Bind(&req); err != nil || req.Record == nil {
		return c.JSON(http.StatusBadRequest, RelayResponse{Error: "Missing profile data"})
	}

	result, err := h.alertService.ProcessAlert(c.Request().Context(), req.Record, req.HighRiskThreshold)
	if err != nil {
		// Provider failures echo the provider's error payload upward,
		// as JSON when the provider returned JSON.
		var ne *errors.NetworkError
		if stderrors.As(err, &ne) {
			var payload json.RawMessage
			if json.Unmarshal([]byte(ne.Body), &payload) == nil {
				return c.JSON(http.StatusInternalServerError, RelayResponse{Success: relaySuccess(false), Error: payload})
			}
			return c.JSON(http.StatusInternalServerError, RelayResponse{Success: relaySuccess(false), Error: ne.Body})
		}
		return c.JSON(http.StatusInternalServerError, RelayResponse{Success: relaySuccess(false), Error: err.Error()})
	}

	if !result.Sent {
		return c.JSON(http.StatusOK, RelayResponse{Message: result.Message})
	}
	return c.JSON(http.StatusOK, RelayResponse{Success: relaySuccess(true), Data: result.ProviderResponse})
}
