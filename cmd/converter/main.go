package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ratefeed/converter-api/internal/adapters/cache"
	"github.com/ratefeed/converter-api/internal/adapters/provider"
	"github.com/ratefeed/converter-api/internal/adapters/registry"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
	"github.com/ratefeed/converter-api/internal/core/services"
	"github.com/ratefeed/converter-api/internal/handlers"
	"github.com/ratefeed/converter-api/internal/middleware"
	"github.com/ratefeed/converter-api/internal/platform/config"
	"github.com/ratefeed/converter-api/internal/platform/metrics"
	"github.com/ratefeed/converter-api/pkg/breaker"
	"github.com/ratefeed/converter-api/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Currency Converter API
// @version 1.0
// @description Resilient currency conversion service backed by a live exchange rate provider.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	currencyRegistry, cleanup, err := buildCurrencyRegistry(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize currency registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	rateCache := buildRateCache(cfg, logger)

	m := metrics.NewConverterMetrics(prometheus.DefaultRegisterer)

	br := breaker.New(cfg.BreakerFailureThreshold, cfg.BreakerResetTimeout)
	monobank := provider.NewMonobankProvider(cfg.ProviderBaseURL, cfg.ProviderTimeout)
	rateProvider := provider.NewResilientProvider(monobank, br, m, cfg.RetryMaxAttempts, cfg.RetryBaseDelay)

	serviceContainer := services.NewServiceContainer(cfg, currencyRegistry, rateProvider, rateCache, m)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildCurrencyRegistry picks the currency registry backend. With a database
// URL configured it connects to PostgreSQL and runs migrations; otherwise the
// built-in static ISO 4217 table is used.
func buildCurrencyRegistry(cfg *config.Config, logger *slog.Logger) (portsrepo.CurrencyRegistry, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("No database configured, using static currency registry")
		return registry.NewStaticRegistry(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return nil, nil, err
	}

	return registry.NewPgxCurrencyRegistry(dbPool), dbPool.Close, nil
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a short-lived database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Using pgx/v5/stdlib driver to stay compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildRateCache picks the cache backend. With a Redis address configured the
// shared Redis cache is used; otherwise an in-process cache serves a single
// instance.
func buildRateCache(cfg *config.Config, logger *slog.Logger) portsrepo.RateCache {
	if cfg.RedisAddr == "" {
		logger.Info("No redis configured, using in-memory rate cache")
		return cache.NewMemoryCache()
	}
	logger.Info("Using redis rate cache", slog.String("addr", cfg.RedisAddr))
	return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "ratefeed:")
}
