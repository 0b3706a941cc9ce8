package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-appointment-service/config"
	deliveryHttp "hospital-appointment-service/internal/delivery/http"
	"hospital-appointment-service/internal/delivery/http/handler"
	"hospital-appointment-service/internal/delivery/http/middleware"
	"hospital-appointment-service/internal/infrastructure/cache"
	"hospital-appointment-service/internal/infrastructure/database"
	"hospital-appointment-service/internal/repository"
	"hospital-appointment-service/internal/service"
	"hospital-appointment-service/internal/usecase"
	"hospital-appointment-service/pkg/metrics"
	"hospital-appointment-service/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const metricsNamespace = "hospital"

func init() {
	// bill amounts are JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			app.Close()
			return nil, err
		}
		logrus.Info("Database migrated successfully")
	}

	// Initialize Redis, only used for slot locks
	var slotLocker service.SlotLocker = service.NoopSlotLocker{}
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		slotLocker = service.NewRedisSlotLocker(redisClient, logrus.StandardLogger(), cfg.Redis.SlotLockTTL)
		logrus.Info("Redis connected successfully")
	} else {
		logrus.Warn("REDIS_HOST is empty, slot locks disabled")
	}

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize all layers
	httpHandler := NewHTTPHandler(cfg, db, slotLocker, logrus.StandardLogger(), registry)

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// NewHTTPHandler wires repositories, usecases, handlers and middleware into the
// routed handler chain. Metrics are registered on registry and exposed at /metrics.
func NewHTTPHandler(cfg *config.Config, db *gorm.DB, slotLocker service.SlotLocker, log *logrus.Logger, registry *prometheus.Registry) http.Handler {
	appMetrics := metrics.NewMetrics(registry, metricsNamespace)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, auditService)
	slotUsecase := usecase.NewSlotUsecase(db, log, doctorRepo, slotRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, userRepo, doctorRepo, slotRepo, appointmentRepo, prescriptionRepo, auditService, slotLocker, appMetrics)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, appointmentRepo, prescriptionRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterDeps{
		DoctorHandler:       handler.NewDoctorHandler(doctorUsecase),
		SlotHandler:         handler.NewSlotHandler(slotUsecase, customValidator),
		AppointmentHandler:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		PrescriptionHandler: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		AuditLogHandler:     handler.NewAuditLogHandler(auditLogUsecase),
		PageHandler:         handler.NewPageHandler(cfg.App.StaticDir),
		CORSMiddleware:      middleware.NewCORSMiddleware(""),
		LoggingMiddleware:   middleware.NewLoggingMiddleware(log),
		RecoveryMiddleware:  middleware.NewRecoveryMiddleware(log),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(appMetrics),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log),
		Gatherer:            registry,
	})

	return router.Setup()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
