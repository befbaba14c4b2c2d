package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bouncer/internal/config"
	"bouncer/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	profileHandler *handler.ProfileHandler,
	riskHandler *handler.RiskHandler,
	functionHandler *handler.FunctionHandler,
	outcomeHandler *handler.OutcomeHandler,
	logHandler *handler.LogHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// Relay endpoints keep the serverless-function surface: public, CORS
	// enabled, OPTIONS preflight supported.
	functions := e.Group("/functions", middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", echo.HeaderContentType},
	}))
	functions.POST("/calculate-risk", functionHandler.CalculateRisk)
	functions.POST("/risk-alert", functionHandler.RiskAlert)

	api := e.Group("/api")

	// Public routes
	api.GET("/seed/profiles", seedHandler.SeedProfiles)

	// Secured routes: bearer tokens issued by the identity provider and
	// verified with the shared secret.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Profile routes
	secured.GET("/profiles", profileHandler.ListProfiles)
	secured.GET("/profiles/:id", profileHandler.GetProfile)
	secured.POST("/profiles", profileHandler.CreateProfile)

	// Batch pipeline routes
	secured.POST("/risk/calculate", riskHandler.CalculateAll)
	secured.POST("/risk/scan", riskHandler.Scan)
	secured.GET("/outcomes", outcomeHandler.ListOutcomes)

	// Diagnostic log buffer
	secured.GET("/logs", logHandler.GetLogs)
	secured.DELETE("/logs", logHandler.ClearLogs)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
