package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	"travel-booking/internal/infra/ratelimit"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewRateLimitCounter,
		NewRateLimiter,
	),
)

// NewRateLimitCounter prefers Redis when configured so that instances share one window.
// An unreachable Redis at startup falls back to the in-process counter.
func NewRateLimitCounter(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) ratelimit.Counter {
	if !strings.EqualFold(cfg.RateLimit.Backend, config.RateLimitBackendRedis) {
		return ratelimit.NewMemoryCounter()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting per instance",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("error", err.Error()))
		_ = rdb.Close()
		return ratelimit.NewMemoryCounter()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	logger.Info("rate limiting backed by redis", slog.String("addr", cfg.Redis.Addr))
	return ratelimit.NewRedisCounter(rdb)
}

func NewRateLimiter(counter ratelimit.Counter, clk clock.Clock, cfg config.Config) *ratelimit.Limiter {
	return ratelimit.NewLimiter(counter, clk, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
}
