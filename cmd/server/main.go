package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/application/usecase"
	"github.com/mercato/mercato/infrastructure/config"
	apphttp "github.com/mercato/mercato/infrastructure/http"
	"github.com/mercato/mercato/infrastructure/http/handler"
	"github.com/mercato/mercato/infrastructure/http/middleware"
	"github.com/mercato/mercato/infrastructure/persistence/postgres"
	"github.com/mercato/mercato/infrastructure/service/jwt"
	"github.com/mercato/mercato/infrastructure/service/logger"
	"github.com/mercato/mercato/infrastructure/service/password"
	"github.com/mercato/mercato/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "mercato-api",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	var rateLimiter outbound.RateLimiter = ratelimit.NewNoopRateLimiter()
	if cfg.RateLimitEnabled {
		redisLimiter, err := ratelimit.NewRedisRateLimiter(cfg.RedisURL, structuredLogger)
		if err != nil {
			// The API stays usable without Redis; only brute-force
			// throttling is lost.
			structuredLogger.Error(ctx, "Rate limiting disabled, Redis unavailable", err, map[string]interface{}{
				"redis_url": cfg.RedisURL,
			})
		} else {
			defer redisLimiter.Close()
			rateLimiter = redisLimiter
			structuredLogger.Info(ctx, "Rate limiting enabled", nil)
		}
	}

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost, cfg.HashWorkers)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, passwordService, structuredLogger, cfg.AccessTokenTTL)
	userUseCase := usecase.NewUserUseCase(userRepo, passwordService, structuredLogger)
	productUseCase := usecase.NewProductUseCase(productRepo, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimiter, structuredLogger)

	router := apphttp.NewRouter(apphttp.RouterDeps{
		Config:         cfg,
		AuthHandler:    handler.NewAuthHandler(authUseCase, structuredLogger),
		UserHandler:    handler.NewUserHandler(userUseCase, structuredLogger),
		ProductHandler: handler.NewProductHandler(productUseCase, structuredLogger),
		AuthMiddleware: authMiddleware,
		RateLimit:      rateLimitMiddleware,
	})

	server := &stdhttp.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
