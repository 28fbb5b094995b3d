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

	"crewline/internal/app"
	"crewline/internal/config"
	"crewline/internal/database"
	apphttp "crewline/internal/http"
	"crewline/internal/http/handlers"
	"crewline/internal/http/metrics"
	httpmw "crewline/internal/http/middleware"
	"crewline/internal/observability"
	"crewline/internal/repository/postgres"
	"crewline/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	transportationRepo := postgres.NewTransportationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, jwtProvider, cfg.TokenTTL)
	eventService := app.NewEventService(eventRepo)
	applicationService := app.NewApplicationService(applicationRepo, eventRepo)
	decisionService := app.NewDecisionService(applicationRepo, eventRepo)
	transportationService := app.NewTransportationService(transportationRepo, applicationRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	applicationHandler := handlers.NewApplicationHandler(applicationService, decisionService, limiter)
	eventHandler := handlers.NewEventHandler(eventService)
	transportationHandler := handlers.NewTransportationHandler(transportationService, applicationService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:           authHandler,
		ApplicationHandler:    applicationHandler,
		EventHandler:          eventHandler,
		TransportationHandler: transportationHandler,
		AuthMiddleware:        middleware,
		Metrics:               metrics.NewCollector(),
		RequestTimeout:        cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API started")
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
