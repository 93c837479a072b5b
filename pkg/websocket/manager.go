package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"flatmate/pkg/redis"

	"github.com/gorilla/websocket"
)

// Client is one user's live notification channel.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks connected users. Notifications for users without a live
// channel land in the redis offline queue and replay on reconnect.
type Manager struct {
	clients map[uint]*Client
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[uint]*Client),
}

// GetManager returns the global notification manager.
func GetManager() *Manager {
	return manager
}

// AddClient registers a connection and replays queued notifications.
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[userID] = client

	go m.pushQueuedNotifications(userID, client)
}

// RemoveClient drops a connection.
func (m *Manager) RemoveClient(userID uint) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// Notify delivers an event to the user: live push when connected,
// otherwise into the redis offline queue.
func (m *Manager) Notify(userID uint, n *redis.Notification) {
	m.lock.RLock()
	client, ok := m.clients[userID]
	m.lock.RUnlock()

	if !ok {
		go func() { _ = redis.AddNotification(userID, n) }()
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
		// channel full or closing, keep the event for replay
		go func() { _ = redis.AddNotification(userID, n) }()
	}
}

// IsOnline reports whether the user has a live channel on this instance.
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// pushQueuedNotifications replays the offline queue, newest first.
func (m *Manager) pushQueuedNotifications(userID uint, client *Client) {
	queued, err := redis.GetNotifications(userID, 50)
	if err != nil {
		return
	}

	for _, n := range queued {
		data, err := json.Marshal(n)
		if err != nil {
			continue
		}
		select {
		case client.Send <- data:
		case <-time.After(5 * time.Second):
			return
		}
	}

	_ = redis.ClearNotifications(userID)
}
