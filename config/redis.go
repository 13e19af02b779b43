package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when no address is configured or the server does not
// answer; callers treat nil as "rate limiting disabled".
func NewRedis(s RedisSettings) *redis.Client {
	if s.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr,
		Password: s.Password,
		DB:       s.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unreachable at %s: %v. Login rate limiting disabled.", s.Addr, err)
		client.Close()
		return nil
	}

	log.Printf("✅ Redis connected at %s", s.Addr)
	return client
}
