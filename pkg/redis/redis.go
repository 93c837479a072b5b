package redis

import (
	"context"
	"fmt"
	"time"

	"flatmate/config"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// InitRedis connects the client. Redis is derived state only: counters,
// caches and the offline notification queue. The service stays correct
// without it, so callers treat redis errors as soft failures.
func InitRedis(cfg config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis connect failed: %w", err)
	}
	return nil
}

// GetClient returns the raw client, nil when redis is disabled.
func GetClient() *redis.Client {
	return client
}

// Close shuts the connection pool down.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings redis.
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Set stores a key with TTL.
func Set(key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get fetches a key's value.
func Get(key string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("redis client not initialized")
	}
	return client.Get(ctx, key).Result()
}

// Del removes keys.
func Del(keys ...string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Del(ctx, keys...).Err()
}
