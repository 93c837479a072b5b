package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedCollege is the directory entry shape stored in the cache.
type CachedCollege struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// The college directory changes only on re-seed, so one cache key with a
// long TTL covers the whole list.
const (
	collegeDirectoryKey = "fm:colleges"
	collegeDirectoryTTL = 12 * time.Hour
)

// CacheColleges stores the full directory.
func CacheColleges(colleges []CachedCollege) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	data, err := json.Marshal(colleges)
	if err != nil {
		return fmt.Errorf("marshal college directory: %w", err)
	}
	if err := client.Set(ctx, collegeDirectoryKey, data, collegeDirectoryTTL).Err(); err != nil {
		return fmt.Errorf("cache college directory: %w", err)
	}
	return nil
}

// GetCachedColleges reads the directory; (nil, nil) means cache miss.
func GetCachedColleges() ([]CachedCollege, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	result, err := client.Get(ctx, collegeDirectoryKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read college directory cache: %w", err)
	}

	var colleges []CachedCollege
	if err := json.Unmarshal([]byte(result), &colleges); err != nil {
		return nil, fmt.Errorf("unmarshal college directory: %w", err)
	}
	return colleges, nil
}

// InvalidateColleges clears the directory cache after seeding.
func InvalidateColleges() error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Del(ctx, collegeDirectoryKey).Err()
}
