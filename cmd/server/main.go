package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"

	"github.com/lending/recovery-service/internal/cache"
	"github.com/lending/recovery-service/internal/config"
	"github.com/lending/recovery-service/internal/events"
	"github.com/lending/recovery-service/internal/handler"
	"github.com/lending/recovery-service/internal/model"
	"github.com/lending/recovery-service/internal/pkg/logger"
	"github.com/lending/recovery-service/internal/pkg/telemetry"
	"github.com/lending/recovery-service/internal/scoring"
	"github.com/lending/recovery-service/internal/storage/postgres"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	log, err := logger.New(cfg.Telemetry.ServiceName, cfg.Telemetry.Environment, cfg.Telemetry.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// 3. Telemetry
	shutdownTracing, err := telemetry.Setup(ctx, &cfg.Telemetry)
	if err != nil {
		log.Fatal("failed to initialize tracing", logger.ErrorField(err))
	}
	defer shutdownTracing(ctx)

	// 4. Storage
	db, err := postgres.New(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to postgres", logger.ErrorField(err))
	}
	defer db.Close()

	assessments := postgres.NewAssessmentRepository(db)
	contacts := postgres.NewContactRepository(db)

	// 5. Cache
	resultCache := cache.New(&cfg.Redis)
	defer resultCache.Close()

	// 6. Events
	publisher, err := events.NewPublisher(&cfg.Kafka, log)
	if err != nil {
		log.Fatal("failed to connect to kafka", logger.ErrorField(err))
	}
	defer publisher.Close()

	// 7. Scoring pipeline
	classifier := model.NewHTTPClient(&cfg.Model, log)
	adapter := scoring.NewModelAdapter(classifier, log)
	tracer := otel.Tracer(cfg.Telemetry.ServiceName)
	engine := scoring.NewEngine(adapter, &cfg.Scoring, log, tracer)

	// 8. Initialize Echo
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.Server.MaxRequestSize)))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Security.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	// 9. Routes
	h := handler.New(engine, assessments, contacts, resultCache, publisher, log)
	h.AddProbe("postgres", db)
	h.AddProbe("redis", resultCache)
	h.Register(e, cfg.Security.JWTSecret)

	// 10. Start Server (Graceful Shutdown)
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("shutting down the server", logger.ErrorField(err))
		}
	}()

	log.Info("server started", logger.StringField("addr", serverAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal("forced shutdown", logger.ErrorField(err))
	}

	log.Info("server exited properly")
}
