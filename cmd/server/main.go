package main

import (
	"log"
	"net/http"
	"os"

	"bouncer/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bouncer/internal/alert"
	"bouncer/internal/cache"
	"bouncer/internal/config"
	"bouncer/internal/db"
	"bouncer/internal/handler"
	"bouncer/internal/inference"
	"bouncer/internal/logging"
	"bouncer/internal/mailer"
	"bouncer/internal/model"
	"bouncer/internal/repository"
	"bouncer/internal/router"
	"bouncer/internal/service"
)

// @title Bouncer Risk API
// @version 1.0
// @description Profile risk-scoring pipeline: batch calculation, high-risk scanning, and alert relay endpoints.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration: %v", err)
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	logBuffer := logging.NewBuffer(logging.DefaultBufferSize)
	logger := logging.New(cfg.LogLevel, logBuffer)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.ScoringOutcome{},
			&model.Profile{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warn("failed to drop table (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Profile{},
		&model.ScoringOutcome{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(gormDB)
	outcomeRepo := repository.NewOutcomeRepository(gormDB)

	// Initialize external clients
	inferClient := inference.New(cfg.InferenceBaseURL)
	mail := mailer.NewResend(cfg.ResendAPIKey, "")
	relayURL := cfg.AlertRelayURL
	if relayURL == "" {
		// The scanner posts to this server's own relay endpoint unless an
		// external one is configured.
		relayURL = "http://localhost:" + cfg.ServerPort + "/functions/risk-alert"
	}
	relayClient := alert.NewClient(relayURL)

	// Initialize services
	recorder := service.NewOutcomeRecorder(outcomeRepo, logger)
	defer recorder.Close()
	profileService := service.NewProfileService(profileRepo, cacheClient)
	riskService := service.NewRiskService(profileRepo, inferClient, recorder, cacheClient, logger)
	scannerService := service.NewScannerService(profileRepo, relayClient, recorder, logger)
	alertService := service.NewAlertService(mail, cfg.AlertFrom, cfg.AlertTo, logger)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileService)
	riskHandler := handler.NewRiskHandler(riskService, scannerService)
	functionHandler := handler.NewFunctionHandler(riskService, alertService)
	outcomeHandler := handler.NewOutcomeHandler(outcomeRepo)
	logHandler := handler.NewLogHandler(logBuffer)
	seedHandler := handler.NewSeedHandler(profileService)

	// Register routes
	router.Register(
		e,
		cfg,
		profileHandler,
		riskHandler,
		functionHandler,
		outcomeHandler,
		logHandler,
		seedHandler,
	)

	logger.Info("starting server", zap.String("port", cfg.ServerPort))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
