package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/infra/ratelimit"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
	prefix  string
	enabled bool
	logger  *slog.Logger
}

func NewRateLimitMiddleware(limiter *ratelimit.Limiter, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		prefix:  cfg.Prefix,
		enabled: cfg.Enabled && limiter != nil,
		logger:  logger,
	}
}

// Limit throttles per client IP. Counter failures let the request through.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		key := m.prefix + ":ip:" + c.ClientIP()
		d, err := m.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			m.logger.WarnContext(c.Request.Context(), "rate limit counter unavailable, allowing request",
				slog.String("key", key),
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			err := errs.Mark(errs.Newf("rate limit exceeded for %s", key), errs.ErrRateLimited)
			httperr.AbortWithError(c, http.StatusTooManyRequests, err, "Too many requests, please try again later", gin.H{
				"retryAfterSeconds": retry,
			})
			return
		}
		c.Next()
	}
}
