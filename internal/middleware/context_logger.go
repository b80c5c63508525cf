package middleware

import (
	"lemonpay/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger decorates a request-scoped logger with the request id and
// actor, and stores both on the standard context so services and repos can
// log without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		actor := c.GetString("employee_number")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor", actor),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithActorID(ctx, actor)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
