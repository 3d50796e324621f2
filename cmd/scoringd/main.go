package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/port"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/infrastructure/adapter"
	"github.com/creditscorepro/scoring-service/internal/infrastructure/config"
	"github.com/creditscorepro/scoring-service/internal/infrastructure/kafka"
	pgRepo "github.com/creditscorepro/scoring-service/internal/infrastructure/persistence/postgres"
	"github.com/creditscorepro/scoring-service/internal/platform/auth"
	"github.com/creditscorepro/scoring-service/internal/platform/observability"
	grpcPresentation "github.com/creditscorepro/scoring-service/internal/presentation/grpc"
	"github.com/creditscorepro/scoring-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting scoring-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"audit_enabled", cfg.AuditEnabled,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	}

	// Audit-trail infrastructure. When disabled the service renders decisions
	// without persistence or event publication.
	var (
		decisions port.DecisionRepository
		publisher port.EventPublisher
		dbCheck   rest.ReadinessCheck
	)
	if cfg.AuditEnabled {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		pool, poolErr := pgRepo.NewPool(dbCtx, pgRepo.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		})
		if poolErr != nil {
			logger.Error("failed to connect to database", "error", poolErr)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("connected to database")

		migDSN := pgRepo.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		}.DSN()
		if migErr := pgRepo.RunMigrations(migDSN, "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}

		decisions = pgRepo.NewDecisionRepo(pool)
		dbCheck = func(ctx context.Context) error { return pgRepo.HealthCheck(ctx, pool) }

		kafkaProducer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		defer kafkaProducer.Close()
		publisher = kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	}

	// Classifier: remote model server when configured, deterministic stub
	// otherwise.
	var classifier port.Classifier
	if cfg.Model.URL != "" {
		classifier = adapter.NewModelClient(adapter.ModelClientConfig{
			BaseURL:        cfg.Model.URL,
			APIKey:         cfg.Model.APIKey,
			TimeoutSeconds: cfg.Model.TimeoutSeconds,
			MaxRetries:     cfg.Model.MaxRetries,
			RetryBackoffMs: cfg.Model.RetryBackoffMs,
		})
		logger.Info("using remote model server", "url", cfg.Model.URL)
	} else {
		classifier = adapter.NewStubClassifier()
		logger.Info("MODEL_URL not set, using stub classifier")
	}

	// Domain services and use cases.
	scorer := service.NewRiskScorer(classifier, service.DefaultFeatureNames())
	engine := service.NewDecisionEngine(cfg.Policy, scorer)

	analyzeUC := usecase.NewAnalyzeApplicationUseCase(engine, decisions, publisher, logger)
	paymentUC := usecase.NewComputePaymentUseCase(engine.Calculator())
	capacityUC := usecase.NewComputeCapacityUseCase(engine.Calculator())
	scheduleUC := usecase.NewAmortizationScheduleUseCase(engine.Calculator())

	var historyUC *usecase.DecisionHistoryUseCase
	if decisions != nil {
		historyUC = usecase.NewDecisionHistoryUseCase(decisions)
	}

	// JWT service (validation-only: public key preferred, secret as fallback).
	// With no key material, the gRPC surface runs unauthenticated.
	var jwtSvc *auth.JWTService
	jwtCfg := auth.Config{Issuer: getEnv("JWT_ISSUER", "creditscore-gateway")}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = []byte(os.Getenv("JWT_PUBLIC_KEY"))
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := os.ReadFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = keyData
	case os.Getenv("JWT_SECRET") != "":
		jwtCfg.Secret = os.Getenv("JWT_SECRET")
	}
	if len(jwtCfg.PublicKeyPEM) > 0 || jwtCfg.Secret != "" {
		jwtSvc, err = auth.NewJWTService(jwtCfg)
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewScoringHandler(analyzeUC, paymentUC, capacityUC, scheduleUC)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc)

	// HTTP server: scoring REST surface, health checks, metrics.
	mux := http.NewServeMux()

	creditHandler := rest.NewCreditHandler(analyzeUC, paymentUC, capacityUC, scheduleUC, historyUC, logger)
	creditHandler.RegisterRoutes(mux)

	healthHandler := rest.NewHealthHandler(logger)
	if dbCheck != nil {
		healthHandler.AddCheck("postgres", dbCheck)
	}
	healthHandler.RegisterRoutes(mux)

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	limiter := rest.NewRateLimiter(getEnvInt("HTTP_RATE_LIMIT_RPS", 50))
	var httpHandler http.Handler = mux
	httpHandler = rest.RateLimitMiddleware(limiter)(httpHandler)
	httpHandler = rest.LoggingMiddleware(logger)(httpHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("scoring-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return fallback
}
