package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/application/checkout"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/infrastructure/auth"
	"github.com/dressshop/backend/internal/infrastructure/cache"
	"github.com/dressshop/backend/internal/infrastructure/config"
	"github.com/dressshop/backend/internal/infrastructure/logger"
	"github.com/dressshop/backend/internal/infrastructure/payment"
	"github.com/dressshop/backend/internal/infrastructure/persistence"
	"github.com/dressshop/backend/internal/infrastructure/telemetry"
	"github.com/dressshop/backend/internal/interfaces/http/handler"
	"github.com/dressshop/backend/internal/interfaces/http/middleware"
	"github.com/dressshop/backend/internal/interfaces/http/router"
)

//	@title			Dress Shop Storefront API
//	@version		1.0
//	@description	Checkout, payment reconciliation and fulfilment for the dress shop.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFromApp(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFromApp(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx,
		telemetry.LogsConfigFromApp(cfg.Telemetry, logger.ParseLevel(cfg.Log.Level)), log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFromApp(cfg.Profiling), log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	profiler.LinkSpans(tracerProvider)

	checkoutMetrics, err := telemetry.NewCheckoutMetrics(meterProvider.Meter("dressshop/checkout"))
	if err != nil {
		log.Fatal("Failed to register checkout metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.App.IsDevelopment(),
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Idempotency store: Redis when configured, in-memory otherwise
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.IsDevelopment()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Payment gateway
	gateway, err := payment.NewRazorpayAdapter(payment.RazorpayConfigFromApp(cfg.Gateway), log)
	if err != nil {
		log.Fatal("Failed to configure payment gateway", zap.Error(err))
	}

	// Application services
	intakeService := checkout.NewOrderIntakeService(checkout.OrderIntakeServiceConfig{
		Users:   userRepo,
		Orders:  orderRepo,
		Catalog: catalogRepo,
		Gateway: gateway,
		Factors: order.CurrencyFactors(cfg.Checkout.CurrencyFactors),
		Metrics: checkoutMetrics,
		Logger:  log,
	})
	verificationService := checkout.NewPaymentVerificationService(checkout.PaymentVerificationServiceConfig{
		Orders:   orderRepo,
		Verifier: gateway,
		Metrics:  checkoutMetrics,
		Logger:   log,
	})
	fulfillmentService := checkout.NewFulfillmentService(checkout.FulfillmentServiceConfig{
		Orders:  orderRepo,
		Metrics: checkoutMetrics,
		Logger:  log,
	})
	queryService := checkout.NewOrderQueryService(checkout.OrderQueryServiceConfig{
		Orders: orderRepo,
		Items:  catalogRepo,
		Users:  userRepo,
		Logger: log,
	})

	// HTTP
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine, err := router.NewAPI(router.APIConfig{
		Orders:         handler.NewOrderHandler(intakeService, verificationService, queryService),
		Admin:          handler.NewAdminOrderHandler(queryService, fulfillmentService),
		Health:         handler.NewHealthHandler(db),
		Tokens:         auth.NewJWTService(cfg.JWT),
		Authorizer:     identity.NewRoleAuthorizer(userRepo),
		Idempotency:    idempotencyStore,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		VerifyLimiter:  middleware.NewRateLimiter(cfg.HTTP.VerifyRateLimit, cfg.HTTP.VerifyRateBurst),
		RequestTimeout: cfg.HTTP.RequestTimeout,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		CORS:           corsConfig,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Meter:           meterProvider.Meter("dressshop/http"),
		ProfilingLabels: profiler.IsEnabled() && cfg.Profiling.RouteLabels,
		Logger:          log,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP API", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler stop failed", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}
}
