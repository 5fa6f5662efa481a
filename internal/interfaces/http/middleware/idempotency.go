package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the client's submission key
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// IdempotencyConfig holds configuration for the duplicate-submission guard
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a request whose Idempotency-Key was already submitted
// by the same user within the TTL. Requests without the header pass through.
// A request that does not complete with 2xx releases its key. Must run after JWTAuth.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInvalidInput, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		storeKey := GetJWTUserID(c).String() + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()

		fresh, err := cfg.Store.MarkProcessed(ctx, storeKey, ttl)
		if err != nil {
			// Store outage must not block checkout
			log.Error("idempotency store unavailable", zap.String("key", storeKey), zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			log.Info("duplicate submission rejected", zap.String("key", storeKey))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest, shared.ErrDuplicateRequest.Message, GetRequestID(c)))
			return
		}

		c.Next()

		if status := c.Writer.Status(); status < 200 || status >= 300 {
			if err := cfg.Store.Release(context.WithoutCancel(ctx), storeKey); err != nil {
				log.Warn("failed to release idempotency key", zap.String("key", storeKey), zap.Error(err))
			}
		}
	}
}
