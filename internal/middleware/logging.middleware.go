package middleware

import (
	"time"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs each request on completion, and again at WARN when it
// took longer than slow. Run it after CorrelationIDMiddleware.
func RequestLogger(slow time.Duration) gin.HandlerFunc {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		log := logger.WithRequest(logger.FromContext(c.Request.Context()), c.Request)

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
			zap.String("ip", c.ClientIP()),
		}
		if c.Request.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", c.Request.URL.RawQuery))
		}
		if claims, ok := ClaimsFromContext(c); ok {
			if id, ok := claims.Int64(model.ClaimUserID); ok {
				fields = append(fields, zap.Int64("userId", id))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		log.Info("Request completed", fields...)

		if duration > slow {
			log.Warn("Slow request detected", zap.Duration("duration", duration))
		}
	}
}
