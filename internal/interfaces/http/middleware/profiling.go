package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dressshop/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags CPU samples taken while serving a request with its
// method and route pattern. Unmatched routes are not labelled.
func ProfilingLabels() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		telemetry.WithRouteLabels(c.Request.Context(), c.Request.Method, route, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
