package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RateLimiter interface {
	Allow(ctx context.Context, scope, subject string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimit throttles requests per client IP. Limiter failures let the
// request through.
func RateLimit(limiter RateLimiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP(), limit, window)
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.ResponseError(c, apperror.RateLimited("too many requests, try again later"))
			return
		}

		c.Next()
	}
}
