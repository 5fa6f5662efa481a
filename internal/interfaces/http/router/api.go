package router

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/logger"
	"github.com/dressshop/backend/internal/interfaces/http/handler"
	"github.com/dressshop/backend/internal/interfaces/http/middleware"
)

// APIConfig carries everything needed to assemble the storefront HTTP API
type APIConfig struct {
	Orders *handler.OrderHandler
	Admin  *handler.AdminOrderHandler
	Health *handler.HealthHandler

	Tokens      middleware.TokenValidator
	Authorizer  identity.Authorizer
	Idempotency shared.IdempotencyStore

	IdempotencyTTL time.Duration
	VerifyLimiter  *middleware.RateLimiter
	RequestTimeout time.Duration
	MaxBodySize    int64
	CORS           middleware.CORSConfig
	TrustedProxies []string

	Tracing middleware.TracingConfig
	// Meter enables HTTP request metrics when set
	Meter metric.Meter
	// ProfilingLabels tags profiles with the matched route
	ProfilingLabels bool
	Logger          *zap.Logger
}

func (c APIConfig) validate() error {
	switch {
	case c.Orders == nil || c.Admin == nil || c.Health == nil:
		return errors.New("router: handlers are required")
	case c.Tokens == nil:
		return errors.New("router: token validator is required")
	case c.Authorizer == nil:
		return errors.New("router: authorizer is required")
	case c.Idempotency == nil:
		return errors.New("router: idempotency store is required")
	case c.VerifyLimiter == nil:
		return errors.New("router: verify rate limiter is required")
	}
	return nil
}

// NewAPI builds the gin engine with the middleware chain and all routes.
//
// Middleware order:
//  1. Recovery - catch panics
//  2. RequestID - generate/propagate request ID
//  3. Tracing + SpanEnricher - server span per request
//  4. Logger - request-scoped zap logger
//  5. Metrics - request count and latency, profiling labels
//  6. Secure, CORS, BodyLimit, RequestTimeout
func NewAPI(cfg APIConfig) (*gin.Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	if cfg.Meter != nil {
		httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
		if err != nil {
			return nil, err
		}
		engine.Use(httpMetrics)
	}
	if cfg.ProfilingLabels {
		engine.Use(middleware.ProfilingLabels())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	engine.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	engine.GET("/health", cfg.Health.Health)

	jwt := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		Validator: cfg.Tokens,
		Logger:    log,
	})

	r := NewRouter(engine, WithAPIVersion("v1"))

	// The gateway confirmation comes from the checkout page without a session
	payments := NewDomainGroup("payments", "/orders/payment").
		Use(middleware.RateLimit(cfg.VerifyLimiter))
	payments.POST("/verify", cfg.Orders.VerifyPayment)
	r.Register(payments)

	orders := NewDomainGroup("orders", "/orders").Use(jwt)
	orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  cfg.Idempotency,
		TTL:    cfg.IdempotencyTTL,
		Logger: log,
	}), cfg.Orders.CreateOrder)
	orders.GET("/me", cfg.Orders.ListMyOrders)
	orders.GET("/:id", cfg.Orders.GetOrder)
	r.Register(orders)

	admin := NewDomainGroup("admin", "/admin").
		Use(jwt, middleware.RequireAdmin(cfg.Authorizer, log))
	admin.GET("/orders", cfg.Admin.ListPaidOrders)
	admin.PUT("/orders/:id/deliver", cfg.Admin.MarkDelivered)
	r.Register(admin)

	r.Setup()
	for _, g := range []*DomainGroup{payments, orders, admin} {
		for _, route := range g.Routes() {
			log.Debug("route registered",
				zap.String("group", g.Name()),
				zap.String("method", route.Method),
				zap.String("path", r.BasePath()+route.Path),
			)
		}
	}
	return engine, nil
}
