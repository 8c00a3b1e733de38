package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/contextutil"
)

// RequestLogger attaches a request-scoped logger to the context and emits a
// single access line when the handler chain finishes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = zap.L()
	}
	logger := base.Named("http")

	return func(c *gin.Context) {
		start := time.Now()

		scoped := logger.With(
			zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), scoped)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		scoped.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
