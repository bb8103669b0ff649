package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wealthdesk/internal/config"
	"wealthdesk/internal/database"
	"wealthdesk/internal/handlers"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/nav"
	"wealthdesk/internal/server"
	"wealthdesk/internal/services"
	"wealthdesk/internal/validator"
	"wealthdesk/internal/valuation"

	"github.com/gin-gonic/gin"

	_ "wealthdesk/internal/docs" // Import swagger docs
)

// @title           Wealthdesk API
// @version         1.0
// @description     Wealthdesk values client mutual-fund holdings: lumpsum and SIP investments, reconstructed SIP lots, and redemptions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if cerr := dbManager.Close(); cerr != nil {
			log.Warnw("failed to close database", "error", cerr)
		}
	}()

	if err := dbManager.RunMigrations(database.DefaultMigrationsSource); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// NAV resolution
	provider := nav.NewHTTPProvider(
		nav.WithBaseURL(appConfig.NavProviderURL),
		nav.WithTimeout(appConfig.NavRequestTimeout),
		nav.WithRateLimit(appConfig.NavRateLimit),
	)
	resolver := nav.NewResolver(provider,
		nav.WithToleranceDays(appConfig.NavToleranceDays),
		nav.WithCacheTTL(appConfig.NavCacheTTL),
	)
	generator := valuation.NewGenerator(resolver,
		valuation.WithLocation(appConfig.Location),
		valuation.WithConcurrency(appConfig.NavLookupConcurrency),
	)
	recalc := valuation.NewRecalculator(resolver, generator)

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	investmentService := services.NewInvestmentService(db, resolver, recalc)
	redemptionService := services.NewRedemptionService(db, resolver, recalc)
	recomputeService := services.NewRecomputeService(db, recalc)
	fundService := services.NewFundService(resolver)

	router := server.NewRouter(server.Handlers{
		Investment: handlers.NewInvestmentHandler(investmentService, auditService),
		Redemption: handlers.NewRedemptionHandler(redemptionService, auditService),
		Fund:       handlers.NewFundHandler(fundService),
		Pipeline:   handlers.NewPipelineHandler(recomputeService, auditService),
	}, server.Options{
		JWTSecret:      appConfig.JWTSecret,
		PipelineAPIKey: appConfig.PipelineAPIKey,
		RequestLogging: true,
		Swagger:        appConfig.Env != "production",
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Starting wealthdesk API", "port", appConfig.Port, "timezone", appConfig.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
