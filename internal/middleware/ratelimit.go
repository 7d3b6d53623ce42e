package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ulmj7/fulltravelapp/pkg/response"
)

// Counter is the slice of Redis the limiter needs: bump a key, set its TTL.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounter struct {
	client *redis.Client
}

func (r redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, key, ttl).Err()
}

// RedisCounter adapts a go-redis client to the Counter interface. A nil client
// yields a nil Counter, which disables the limiter.
func RedisCounter(client *redis.Client) Counter {
	if client == nil {
		return nil
	}
	return redisCounter{client: client}
}

// RateLimit returns a fixed-window per-IP limiter, used on the unauthenticated
// auth routes. A nil counter, non-positive limit, or non-positive window makes
// it a pass-through. Backend errors fail open: a broken limiter must not take
// the login path down with it.
func RateLimit(counter Counter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if counter == nil || limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:auth:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))
		count, err := counter.Incr(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			counter.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			response.TooManyRequests(c, "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
