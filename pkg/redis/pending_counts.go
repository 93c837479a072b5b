package redis

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pending connection-request counter keys. The counter is a cache over the
// store's count; callers fall back to the database on a miss.
const (
	PendingCountKeyPrefix = "fm:pending:"
	pendingCountTTL       = 24 * time.Hour
)

// IncrementPendingCount bumps the receiver's pending-request badge.
func IncrementPendingCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("increment pending count: %w", err)
	}
	if err := client.Expire(ctx, key, pendingCountTTL).Err(); err != nil {
		return fmt.Errorf("set pending count TTL: %w", err)
	}
	return nil
}

// DecrementPendingCount drops the badge after a request is decided.
func DecrementPendingCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("decrement pending count: %w", err)
	}

	// the counter never goes negative; drop the key instead
	count, err := client.Get(ctx, key).Int64()
	if err == nil && count <= 0 {
		client.Del(ctx, key)
	}
	return nil
}

// GetPendingCount reads the cached badge. -1 means cache miss: recount
// from the database and repopulate with SetPendingCount.
func GetPendingCount(userID uint) (int64, error) {
	if client == nil {
		return -1, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return 0, fmt.Errorf("get pending count: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse pending count: %w", err)
	}
	return count, nil
}

// SetPendingCount repopulates the counter from an authoritative recount.
func SetPendingCount(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)
	if err := client.Set(ctx, key, count, pendingCountTTL).Err(); err != nil {
		return fmt.Errorf("set pending count: %w", err)
	}
	return nil
}
