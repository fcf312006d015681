package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/obveznik/obveznik_backend/internal/adapters/cache"
	"github.com/obveznik/obveznik_backend/internal/adapters/events"
	"github.com/obveznik/obveznik_backend/internal/adapters/nbs"
	"github.com/obveznik/obveznik_backend/internal/core/ports"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/core/services"
	"github.com/obveznik/obveznik_backend/internal/handlers"
	"github.com/obveznik/obveznik_backend/internal/middleware"
	"github.com/obveznik/obveznik_backend/internal/platform/config"
	"github.com/obveznik/obveznik_backend/internal/repositories/database/pgsql"
	"github.com/obveznik/obveznik_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Obveznik Backend API
// @version 1.0
// @description Invoice lifecycle and numbering engine for lump-sum taxpayer firms.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// External adapters degrade gracefully: a missing Redis or Kafka
	// configuration disables the cache / async side effects but keeps the
	// invoicing core fully functional.
	var rateCache ports.RateCache
	if cfg.RedisURL != "" {
		redisClient, rerr := cache.Connect(context.Background(), cfg.RedisURL)
		if rerr != nil {
			logger.Warn("Redis unavailable, rate caching disabled", slog.String("error", rerr.Error()))
		} else {
			defer redisClient.Close()
			rateCache = cache.NewRedisRateCache(redisClient)
			logger.Info("Redis rate cache connected.")
		}
	}

	var dispatcher ports.TaskDispatcher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaDispatcher, kerr := events.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaPDFTopic, cfg.KafkaEmailTopic)
		if kerr != nil {
			logger.Warn("Kafka unavailable, task dispatch disabled", slog.String("error", kerr.Error()))
		} else {
			defer kafkaDispatcher.Close()
			dispatcher = kafkaDispatcher
			logger.Info("Kafka task dispatcher connected.")
		}
	}

	rateSource := nbs.NewRateSource(nbs.Config{
		Endpoint:  cfg.NBSEndpoint,
		Username:  cfg.NBSUsername,
		Password:  cfg.NBSPassword,
		LicenceID: cfg.NBSLicenceID,
		Timeout:   cfg.NBSTimeout,
	})

	repos := pgsql.NewRepositoryProvider(dbPool)

	rateService := services.NewExchangeRateService(rateSource, rateCache)
	revenueBookService := services.NewRevenueBookService(repos.RevenueBookRepo)
	limitService := services.NewLimitService(repos.ReportingRepo, repos.FirmRepo)
	invoiceService := services.NewInvoiceService(
		repos.InvoiceRepo,
		repos.FirmRepo,
		repos.ClientRepo,
		rateService,
		revenueBookService,
		dispatcher,
	)

	serviceContainer := &portssvc.ServiceContainer{
		Invoice:      invoiceService,
		ExchangeRate: rateService,
		Limit:        limitService,
		RevenueBook:  revenueBookService,
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	rate, _ := limiter.NewRateFromFormatted("300-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
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

// runMigrations applies all pending "up" migrations before the server starts
// taking traffic. Uses a temporary database/sql connection via the pgx stdlib
// driver so migrate stays compatible with the main pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
