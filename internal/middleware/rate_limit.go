package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"anoa.com/magangportal/pkg/apperror"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter is the subset of ratelimiter.Limiter used here.
type RateLimiter interface {
	CheckAndSet(ctx context.Context, subject, action string, window time.Duration) (bool, error)
	TTL(ctx context.Context, subject, action string) (time.Duration, error)
	Clear(ctx context.Context, subject, action string) error
}

// RateLimit allows one request per client IP and action per window.
// Rejected requests other than 429 release the window so the client can
// correct the form and retry. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, action string, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		subject := c.ClientIP()

		allowed, err := limiter.CheckAndSet(ctx, subject, action, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("action", action), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			retryAfter, err := limiter.TTL(ctx, subject, action)
			if err != nil || retryAfter <= 0 {
				retryAfter = window
			}
			c.Header("Retry-After", fmt.Sprintf("%.0f", math.Ceil(retryAfter.Seconds())))
			response.Error(c, apperror.New(
				apperror.ErrRateLimitExceeded,
				fmt.Sprintf("terlalu banyak permintaan, coba lagi dalam %.0f detik", math.Ceil(retryAfter.Seconds())),
				nil,
			))
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest && status != http.StatusTooManyRequests {
			if err := limiter.Clear(context.Background(), subject, action); err != nil {
				logger.Warn("failed to clear rate limit", zap.String("action", action), zap.Error(err))
			}
		}
	}
}
