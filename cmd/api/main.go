package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ousmanseid/job-site-sub000/internal/app"
	"github.com/ousmanseid/job-site-sub000/internal/config"
	"github.com/ousmanseid/job-site-sub000/internal/database"
	apphttp "github.com/ousmanseid/job-site-sub000/internal/http"
	"github.com/ousmanseid/job-site-sub000/internal/http/handlers"
	httpmw "github.com/ousmanseid/job-site-sub000/internal/http/middleware"
	"github.com/ousmanseid/job-site-sub000/internal/observability"
	"github.com/ousmanseid/job-site-sub000/internal/repository/postgres"
	"github.com/ousmanseid/job-site-sub000/internal/security"
	"github.com/ousmanseid/job-site-sub000/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	defer logger.Sync()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	cvRepo := postgres.NewCVRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	blobs, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	notificationService := app.NewNotificationService(notificationRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, companyRepo, cvRepo, notificationService)
	jobService := app.NewJobService(jobRepo, companyRepo, userRepo, notificationService)
	companyService := app.NewCompanyService(companyRepo, userRepo, notificationService)
	cvService := app.NewCVService(cvRepo, blobs)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		limiter = httpmw.NewRedisLimiter(client)
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:          handlers.NewJobHandler(jobService),
		ApplicationHandler:  handlers.NewApplicationHandler(applicationService, limiter),
		CompanyHandler:      handlers.NewCompanyHandler(companyService),
		AdminHandler:        handlers.NewAdminHandler(jobService, companyService),
		CVHandler:           handlers.NewCVHandler(cvService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		AuthMiddleware:      httpmw.NewAuthMiddleware(jwtProvider),
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
