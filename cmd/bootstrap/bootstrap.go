package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"librarylens/config"
	deliveryHttp "librarylens/internal/delivery/http"
	"librarylens/internal/delivery/http/handler"
	"librarylens/internal/delivery/http/middleware"
	"librarylens/internal/infrastructure/cache"
	"librarylens/internal/infrastructure/database"
	"librarylens/internal/repository"
	"librarylens/internal/service"
	"librarylens/internal/usecase"
	"librarylens/pkg/jwt"
	"librarylens/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Usecases    *Usecases
}

// Usecases groups the application services shared by the HTTP server and the CLI.
type Usecases struct {
	Auth     usecase.AuthUsecase
	Section  usecase.SectionUsecase
	Book     usecase.BookUsecase
	Purchase usecase.PurchaseUsecase
	AuditLog usecase.AuditLogUsecase
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Security.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TRUSTED_PROXIES: %w", err)
	}

	// Initialize database
	db, err := openDatabase(cfg.DB, gormLogLevel(cfg.App))
	if err != nil {
		return nil, err
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	} else {
		logrus.Warn("Redis disabled, tokens are kept in memory and login is not rate limited")
	}

	log := logrus.StandardLogger()

	// Seed roles, purchase settings and the default administrator
	seeder := service.NewSeedService(db, log,
		repository.NewRoleRepository(),
		repository.NewUserRepository(),
		repository.NewPurchaseSettingsRepository(),
		cfg.Security.BcryptCost,
	)
	if err := seeder.Run(context.Background(), cfg.Purchase, cfg.Admin); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	app.Server = initializeServer(app, log, trustedProxies)

	return app, nil
}

// openDatabase opens the pool, retrying the first connect once, and only
// then applies pending migrations.
func openDatabase(cfg config.DBConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(cfg); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SetupLogger configures the logrus logger
func SetupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func gormLogLevel(cfg config.AppConfig) logger.LogLevel {
	if cfg.IsDevelopment() {
		return logger.Info
	}
	return logger.Warn
}

// initializeServer creates and configures the HTTP server
func initializeServer(app *App, log *logrus.Logger, trustedProxies []netip.Prefix) *http.Server {
	cfg := app.Config
	db := app.DB

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	sectionRepo := repository.NewSectionRepository()
	bookRepo := repository.NewBookRepository()
	purchaseRepo := repository.NewPurchaseRepository()
	settingsRepo := repository.NewPurchaseSettingsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	var tokenStore service.TokenStore
	var limiter middleware.Limiter
	if app.RedisClient != nil {
		tokenStore = service.NewRedisTokenStore(app.RedisClient)
		limiter = service.NewRateLimiter(app.RedisClient, cfg.Security.LoginRateLimit, cfg.Security.RateWindow)
	} else {
		tokenStore = service.NewMemoryTokenStore()
	}

	// Initialize usecases
	app.Usecases = &Usecases{
		Auth:     usecase.NewAuthUsecase(db, log, userRepo, roleRepo, settingsRepo, auditService, tokenStore, jwtService, cfg.Security.BcryptCost),
		Section:  usecase.NewSectionUsecase(db, log, sectionRepo, auditService),
		Book:     usecase.NewBookUsecase(db, log, bookRepo, sectionRepo, purchaseRepo, auditService),
		Purchase: usecase.NewPurchaseUsecase(db, log, userRepo, bookRepo, purchaseRepo, settingsRepo, auditService),
		AuditLog: usecase.NewAuditLogUsecase(db, log, auditLogRepo),
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(app.Usecases.Auth, customValidator, jwtService)
	sectionHandler := handler.NewSectionHandler(app.Usecases.Section, customValidator)
	bookHandler := handler.NewBookHandler(app.Usecases.Book, customValidator)
	purchaseHandler := handler.NewPurchaseHandler(app.Usecases.Purchase, customValidator)
	adminHandler := handler.NewAdminHandler(app.Usecases.Auth, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(app.Usecases.AuditLog)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(app.Config.App.AllowedOrigins)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, trustedProxies, log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		sectionHandler,
		bookHandler,
		purchaseHandler,
		adminHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		rateLimitMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
