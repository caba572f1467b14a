package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/mobility_map/internal/auth"
	"github.com/shenikar/mobility_map/internal/config"
	v1 "github.com/shenikar/mobility_map/internal/handler/http/v1"
	"github.com/shenikar/mobility_map/internal/markers"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/realtime"
	"github.com/shenikar/mobility_map/internal/repository"
	"github.com/shenikar/mobility_map/internal/service"
	"github.com/shenikar/mobility_map/internal/session"
	"github.com/shenikar/mobility_map/internal/webhook"
	"github.com/shenikar/mobility_map/pkg/logger"
	"github.com/shenikar/mobility_map/pkg/postgres"
	redisclient "github.com/shenikar/mobility_map/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/mobility_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Mobility Justice Map API
// @version 1.0
// @description Civic mobility issues on a city map: filtered lists, votes, communities and live map sessions.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token of the auth provider: "Bearer <token>"
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	issueRepo := repository.NewIssueRepository(dbpool, redisClient, cfg.CacheTTL)
	communityRepo := repository.NewCommunityRepository(dbpool)

	// Хаб сессий карты читает проблемы через тот же сервис, что и REST
	var issueService service.IssueService
	hub := realtime.NewHub(
		session.IssueSourceFunc(func(ctx context.Context, city string) ([]*models.Issue, error) {
			return issueService.ListCityIssues(ctx, city)
		}),
		log,
		markers.Options{BlinkInterval: cfg.MarkerBlinkInterval, FocusZoom: cfg.MarkerFocusZoom},
		cfg.CORSOrigins,
	)

	// События уходят в очередь вебхуков и в открытые сессии карты
	publisher := webhook.MultiPublisher{
		webhook.NewRedisEventPublisher(redisClient),
		hub,
	}

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWorker(redisClient, log, cfg)
	workerDone := webhookWorker.Start(ctx)

	// Инициализация сервисов
	issueService = service.NewIssueService(issueRepo, communityRepo, publisher, log)
	communityService := service.NewCommunityService(communityRepo, issueRepo, publisher, log)

	// Инициализация хэндлеров
	verifier := auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	limiter := v1.NewRateLimiter(ctx, cfg.MutationRatePerMinute)
	handler := v1.NewHandler(issueService, communityService, verifier, limiter, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// websocket-соединения не отслеживаются srv.Shutdown
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
