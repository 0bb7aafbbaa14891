package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/tair/foodgram/api-gateway/config"
	"github.com/tair/foodgram/api-gateway/middleware"
	"github.com/tair/foodgram/api-gateway/routes"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "api-gateway")
	logger.Init(serviceName, getEnv("ENVIRONMENT", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("failed to shut down tracer")
			}
		}()
	}

	cfg := config.Load()
	rdb := connectRedis()

	app := fiber.New(fiber.Config{
		AppName:      "Foodgram API Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		ErrorHandler: errorHandler,
	})

	registerMiddleware(app, cfg, rdb)
	routes.Setup(app, cfg)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Port).
			Int("upstreams", len(cfg.Upstreams)).
			Msg("gateway listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Logger.Fatal().Err(err).Msg("gateway stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("shutting down gateway")
	if err := app.Shutdown(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("forced shutdown")
	}
}

func registerMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(middleware.Tracing())
	app.Use(middleware.RequestLogger())

	if rdb != nil {
		cache := middleware.NewResponseCache(rdb, 30*time.Second)
		app.Use(cache.Handler())
	}

	breakers := middleware.NewBreakerSet()
	app.Use(breakers.Handler(cfg))

	if rdb != nil {
		limiter := middleware.NewRateLimiter(rdb, 100, time.Minute)
		app.Use(limiter.Handler())
	} else {
		logger.Logger.Warn().Msg("redis unavailable, rate limiting and caching disabled")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "*"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-Id, traceparent, tracestate",
		AllowCredentials: true,
		ExposeHeaders:    "X-Request-Id, X-Trace-Id, X-Cache, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:           86400,
	}))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
}

func connectRedis() *redis.Client {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getEnv("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("redis_addr", addr).Msg("redis unreachable")
		return nil
	}
	return rdb
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":      err.Error(),
		"statusCode": code,
		"path":       c.Path(),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
