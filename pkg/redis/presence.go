package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// PresenceData tracks whether a user currently holds a notification
// channel; used to decide between live push and the offline queue when
// the service runs as more than one instance.
type PresenceData struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // online/offline
	LastSeen  time.Time `json:"last_seen"`
	Connected bool      `json:"connected"`
}

const (
	PresenceKeyPrefix = "fm:presence:user:"
	OnlineUsersKey    = "fm:online:users"
	PresenceTTL       = 2 * time.Minute // twice the heartbeat period
)

// SetUserPresence records a user's channel status.
func SetUserPresence(userID uint, name string, status string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	presence := PresenceData{
		UserID:    userID,
		Name:      name,
		Status:    status,
		LastSeen:  time.Now(),
		Connected: status == "online",
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("marshal presence: %w", err)
	}

	if err := Set(key, data, PresenceTTL); err != nil {
		return fmt.Errorf("set presence: %w", err)
	}

	if status == "online" {
		err = client.SAdd(ctx, OnlineUsersKey, userID).Err()
	} else {
		err = client.SRem(ctx, OnlineUsersKey, userID).Err()
	}
	if err != nil {
		return fmt.Errorf("update online set: %w", err)
	}
	return nil
}

// RefreshUserPresence extends the TTL on heartbeat.
func RefreshUserPresence(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)
	return client.Expire(ctx, key, PresenceTTL).Err()
}

// IsUserOnline checks the cross-instance online set.
func IsUserOnline(userID uint) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}
	return client.SIsMember(ctx, OnlineUsersKey, userID).Result()
}
