package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/interfaces/http/dto"
)

const adminCapabilityKey = "admin_capability"

// RequireAdmin mints an admin capability for the authenticated user and
// stores it for the handler. Must run after JWTAuth.
func RequireAdmin(authorizer identity.Authorizer, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		userID := GetJWTUserID(c)
		capability, err := authorizer.AuthorizeAdmin(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrForbidden) {
				log.Warn("admin access denied",
					zap.String("user_id", userID.String()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeForbidden, "Administrator access required", GetRequestID(c)))
				return
			}
			log.Error("admin authorization failed", zap.String("user_id", userID.String()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
			return
		}
		c.Set(adminCapabilityKey, capability)
		c.Next()
	}
}

// GetAdminCapability returns the capability minted by RequireAdmin.
// Without it the zero value is returned, which grants nothing.
func GetAdminCapability(c *gin.Context) identity.AdminCapability {
	if v, ok := c.Get(adminCapabilityKey); ok {
		if capability, ok := v.(identity.AdminCapability); ok {
			return capability
		}
	}
	return identity.AdminCapability{}
}
