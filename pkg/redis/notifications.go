package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// Notification is a queued push event for a user who was offline when it
// happened, replayed on their next websocket connect.
type Notification struct {
	Type      string    `json:"type"` // request_created / request_decided
	RequestID uint      `json:"request_id"`
	ListingID uint      `json:"listing_id"`
	FromID    uint      `json:"from_id"`
	FromName  string    `json:"from_name,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	NotificationsKeyPrefix = "fm:notify:"
	notificationsTTL       = 7 * 24 * time.Hour
	notificationsMax       = 100
)

// AddNotification queues a notification for an offline user, newest first.
func AddNotification(userID uint, n *Notification) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", NotificationsKeyPrefix, userID)

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("queue notification: %w", err)
	}
	if err := client.Expire(ctx, key, notificationsTTL).Err(); err != nil {
		return fmt.Errorf("set notification TTL: %w", err)
	}
	// bound the queue for users who never reconnect
	if err := client.LTrim(ctx, key, 0, notificationsMax-1).Err(); err != nil {
		return fmt.Errorf("trim notification queue: %w", err)
	}
	return nil
}

// GetNotifications returns up to limit queued notifications.
func GetNotifications(userID uint, limit int) ([]*Notification, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", NotificationsKeyPrefix, userID)

	results, err := client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notification queue: %w", err)
	}

	var notifications []*Notification
	for _, result := range results {
		var n Notification
		if err := json.Unmarshal([]byte(result), &n); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

// ClearNotifications drops the queue after replay.
func ClearNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", NotificationsKeyPrefix, userID)
	return client.Del(ctx, key).Err()
}
