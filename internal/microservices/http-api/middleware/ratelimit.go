package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cinelibri/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decides whether another request for key fits the current quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over quota with 429. Authenticated requests are keyed by
// user, others by client IP. When the limiter itself fails the request is let through.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := c.GetString(ContextUserID); userID != "" {
			key = "user:" + userID
		}

		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			metrics.RecordRateLimited()
			if w, ok := limiter.(interface{ Window() time.Duration }); ok {
				c.Header("Retry-After", strconv.Itoa(int(w.Window().Seconds())))
			}
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests", "category": "rate_limited"})
			c.Abort()
			return
		}
		c.Next()
	}
}
