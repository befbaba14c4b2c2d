package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bouncer/internal/service"
)

// MockScannerService is a mock implementation of service.ScannerService.
type MockScannerService struct {
	mock.Mock
}

func (m *MockScannerService) Scan(ctx context.Context, threshold int) (*service.ScanSummary, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanSummary), args.Error(1)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func apiRequest(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRiskHandler_CalculateAll(t *testing.T) {
	t.Run("runs the batch with defaults", func(t *testing.T) {
		riskService := new(MockRiskService)
		riskService.On("CalculateAll", mock.Anything, "").
			Return(&service.BatchSummary{Outcomes: []service.Outcome{}, Succeeded: 0}, nil)
		h := NewRiskHandler(riskService, new(MockScannerService))

		c, rec := apiRequest(t, "/api/risk/calculate", `{}`)
		require.NoError(t, h.CalculateAll(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		riskService.AssertExpectations(t)
	})

	t.Run("passes the prompt override through", func(t *testing.T) {
		riskService := new(MockRiskService)
		riskService.On("CalculateAll", mock.Anything, "focus on fraud").
			Return(&service.BatchSummary{Outcomes: []service.Outcome{}}, nil)
		h := NewRiskHandler(riskService, new(MockScannerService))

		c, rec := apiRequest(t, "/api/risk/calculate", `{"prompt":"focus on fraud"}`)
		require.NoError(t, h.CalculateAll(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		riskService.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewRiskHandler(new(MockRiskService), new(MockScannerService))

		c, _ := apiRequest(t, "/api/risk/calculate", `{"prompt":`)
		err := h.CalculateAll(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestRiskHandler_Scan(t *testing.T) {
	t.Run("default threshold", func(t *testing.T) {
		scannerService := new(MockScannerService)
		scannerService.On("Scan", mock.Anything, service.DefaultHighRiskThreshold).
			Return(&service.ScanSummary{Results: []service.ScanResult{}}, nil)
		h := NewRiskHandler(new(MockRiskService), scannerService)

		c, rec := apiRequest(t, "/api/risk/scan", `{}`)
		require.NoError(t, h.Scan(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		scannerService.AssertExpectations(t)
	})

	t.Run("custom threshold", func(t *testing.T) {
		scannerService := new(MockScannerService)
		scannerService.On("Scan", mock.Anything, 75).
			Return(&service.ScanSummary{Results: []service.ScanResult{}}, nil)
		h := NewRiskHandler(new(MockRiskService), scannerService)

		c, rec := apiRequest(t, "/api/risk/scan", `{"threshold":75}`)
		require.NoError(t, h.Scan(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		scannerService.AssertExpectations(t)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		scannerService := new(MockScannerService)
		h := NewRiskHandler(new(MockRiskService), scannerService)

		c, _ := apiRequest(t, "/api/risk/scan", `{"threshold":140}`)
		err := h.Scan(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		scannerService.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
	})
}
