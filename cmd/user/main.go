package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/foodgram/cmd/user/docs"
	"github.com/tair/foodgram/internal/user"
	httpDelivery "github.com/tair/foodgram/internal/user/delivery/http"
	"github.com/tair/foodgram/internal/user/repository"
	"github.com/tair/foodgram/internal/user/usecase/command"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/database"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "user-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting user service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "userdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.NewGormUserRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Initialize handler with Wire DI
	handler, err := user.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Start the recipe event consumer when brokers are configured
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		syncHandler, err := user.InitializeSyncRecipeCountHandler(db)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize recipe count handler")
		}
		consumer, err := startRecipeEventConsumer(ctx, strings.Split(brokers, ","), syncHandler)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
		defer consumer.Close()
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, recipe counts will not be synced")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(handler, sqlDB, httpPort)

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")
}

// startRecipeEventConsumer feeds recipe lifecycle events into the
// per-author recipe count projection
func startRecipeEventConsumer(ctx context.Context, brokers []string, syncHandler *command.SyncRecipeCountHandler) (*kafka.Consumer, error) {
	groupID := getEnv("KAFKA_GROUP_ID", "user-service")
	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicRecipeEvents})
	if err != nil {
		return nil, err
	}

	consumer.RegisterHandler(kafka.EventTypeRecipeCreated, func(ctx context.Context, event kafka.RecipeEvent) error {
		return syncHandler.Handle(command.SyncRecipeCountCommand{AuthorID: event.AuthorID, Delta: 1})
	})
	consumer.RegisterHandler(kafka.EventTypeRecipeDeleted, func(ctx context.Context, event kafka.RecipeEvent) error {
		return syncHandler.Handle(command.SyncRecipeCountCommand{AuthorID: event.AuthorID, Delta: -1})
	})

	if err := consumer.Start(ctx); err != nil {
		return nil, err
	}
	return consumer, nil
}

func startHTTPServer(handler *httpDelivery.UserHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	httpDelivery.RegisterMiddlewares(router, httpDelivery.DefaultMiddlewareConfig())

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
