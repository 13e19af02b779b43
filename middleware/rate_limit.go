package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"rental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// counterStore is the part of the Redis client the limiter uses.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RateLimiter allows limit requests per client IP per period, counted in
// Redis. A nil client disables limiting.
func RateLimiter(client *redis.Client, prefix string, limit int64, period time.Duration) gin.HandlerFunc {
	if client == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimiter(client, prefix, limit, period)
}

func rateLimiter(store counterStore, prefix string, limit int64, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rate_limit:" + prefix + ":" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := store.Incr(ctx, key).Result()
		if err != nil {
			// Redis trouble must not lock admins out.
			log.Printf("⚠️ rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := store.Expire(ctx, key, period).Err(); err != nil {
				// a counter without a TTL would never reset
				log.Printf("⚠️ rate limiter expire %s: %v", key, err)
				if err := store.Del(ctx, key).Err(); err != nil {
					log.Printf("❌ rate limiter cleanup %s: %v", key, err)
				}
				c.Next()
				return
			}
		}

		if count > limit {
			utils.AbortJSONError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		c.Next()
	}
}
