package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/config"
	"github.com/stemsi/school-backend/internal/response"
)

// Limiter decides whether one more request from key is allowed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit returns a Gin middleware that rate-limits requests by client IP.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("Rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// ─── In-process token bucket ───────────────────────────────────────────

// MemoryLimiter implements a simple per-key token bucket.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // Tokens per interval
	interval time.Duration // Refill interval
	now      func() time.Time
	stop     chan struct{}
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewMemoryLimiter creates a MemoryLimiter (e.g., 10 requests per minute).
// Stale visitors are evicted in the background until Close is called.
func NewMemoryLimiter(rate int, interval time.Duration) *MemoryLimiter {
	rl := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// Allow consumes one token for key.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{tokens: rl.rate, lastSeen: now}
		rl.visitors[key] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.rate {
			v.tokens = rl.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}
	v.tokens--
	return true, nil
}

// Close stops the eviction goroutine.
func (rl *MemoryLimiter) Close() {
	close(rl.stop)
}

func (rl *MemoryLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > 3*rl.interval {
			delete(rl.visitors, key)
		}
	}
}

// ─── Redis fixed window ─────────────────────────────────────────────────

// RedisLimiter counts requests per key in fixed windows shared by every
// server instance.
type RedisLimiter struct {
	rdb    *redis.Client
	rate   int
	window time.Duration
}

// NewRedisLimiter creates a RedisLimiter allowing rate requests per window.
func NewRedisLimiter(rdb *redis.Client, rate int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, rate: rate, window: window}
}

// Allow increments the key's counter for the current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := config.CacheKey.RateLimitKey(key, rl.window, time.Now())

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(rl.rate), nil
}
