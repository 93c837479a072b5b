package websocket

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flatmate/config"
	"flatmate/pkg/jwt"
	"flatmate/pkg/redis"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler upgrades the connection and runs the notification channel.
// Auth comes from a token query param or the websocket subprotocol header
// since browsers cannot set Authorization on the upgrade request.
func WsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}
	if token == "" {
		response.Unauthorized(c, "missing token")
		return
	}

	jwtCfg := c.MustGet("jwt_config").(config.JWTConfig) // injected in main
	jwtSvc := jwt.NewJWTService(jwtCfg)
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "token invalid or expired")
		return
	}
	userID, _ := strconv.ParseUint(claims.Subject, 10, 32)
	if userID == 0 {
		response.Unauthorized(c, "token invalid")
		return
	}

	// echo the subprotocol so browsers don't drop the connection
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		return
	}

	client := &Client{
		UserID: uint(userID),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	GetManager().AddClient(uint(userID), client)

	name := ""
	if claims.Data != nil {
		if n, ok := claims.Data["name"].(string); ok {
			name = n
		}
	}
	_ = redis.SetUserPresence(uint(userID), name, "online")

	defer func() {
		GetManager().RemoveClient(uint(userID))
		_ = redis.SetUserPresence(uint(userID), name, "offline")
	}()

	wsCfg := c.MustGet("ws_config").(config.WebSocketConfig)

	// write pump with periodic pings; exits when RemoveClient closes Send
	go func() {
		ticker := time.NewTicker(wsCfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	// read pump: heartbeats only, disconnect after silence
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	})
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		var msg map[string]interface{}
		if err := json.Unmarshal(payload, &msg); err == nil {
			if t, ok := msg["type"].(string); ok && t == "heartbeat" {
				_ = redis.RefreshUserPresence(uint(userID))
			}
		}
	}
}
