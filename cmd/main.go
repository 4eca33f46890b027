package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/CarolGonzaga/projeto-audiomante/internal/config"
	"github.com/CarolGonzaga/projeto-audiomante/internal/handler"
	"github.com/CarolGonzaga/projeto-audiomante/internal/handler/middleware"
	"github.com/CarolGonzaga/projeto-audiomante/internal/migrations"
	"github.com/CarolGonzaga/projeto-audiomante/internal/repository/postgres"
	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/cache"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/logger"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/validator"
)

func main() {
	// Load configuration; missing secrets abort here, not at first request
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	sugar := zlog.Sugar()

	// Initialize database connection
	db, err := initDB(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			sugar.Errorw("error closing database connection", "error", err)
		}
	}()
	sugar.Info("database connection established")

	if err := runMigrations(db); err != nil {
		sugar.Fatalw("failed to run migrations", "error", err)
	}
	sugar.Info("migrations applied")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize redis", "error", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			sugar.Errorw("error closing redis connection", "error", err)
		}
	}()
	sugar.Info("redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	bookRepo := postgres.NewBookRepository(db)
	shelfRepo := postgres.NewBookshelfRepository(db)

	// Initialize services
	tokenService := token.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	userService := service.NewUserService(userRepo, sugar)
	shelfService := service.NewBookshelfService(bookRepo, shelfRepo, sugar)
	catalogService := service.NewCatalogService(
		cfg.Books.BaseURL,
		cfg.Books.APIKey,
		cache.New(redisClient),
		cfg.Books.SuggestionsTTL,
		sugar,
	)

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, tokenService, validate, sugar)
	authHandler := handler.NewAuthHandler(userService, tokenService, oauthConfig, cfg.Client.URL, sugar)
	bookshelfHandler := handler.NewBookshelfHandler(shelfService, validate, sugar)
	catalogHandler := handler.NewCatalogHandler(catalogService, sugar)
	healthHandler := handler.NewHealthHandler(db)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Audiomante API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.Recovery(zlog))
	app.Use(middleware.Logger(zlog))
	app.Use(middleware.CORS())

	authMiddleware := middleware.Auth(tokenService)

	// Setup routes
	handler.SetupRoutes(
		app,
		userHandler,
		authHandler,
		bookshelfHandler,
		catalogHandler,
		healthHandler,
		authMiddleware,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		sugar.Infow("server starting", "addr", addr, "environment", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			sugar.Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("server forced to shutdown", "error", err)
	}

	sugar.Info("server stopped")
}

// initDB initializes the PostgreSQL connection with retry logic
func initDB(cfg *config.Config, sugar *zap.SugaredLogger) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		sugar.Warnw("database connection attempt failed",
			"attempt", i+1, "max_attempts", maxRetries, "error", err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			sugar.Errorw("error closing database after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations applies the embedded goose migrations
func runMigrations(db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return goose.UpContext(ctx, db.DB, ".")
}

// initRedis initializes the Redis client and verifies the connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping redis: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
