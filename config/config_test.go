package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	// no config/config.yaml under the package dir, so defaults apply
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "flatmate", cfg.JWT.Issuer)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_BASE_URL", "https://flatmate.example.com")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRE_TIME", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WS_PING_INTERVAL", "10s")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://flatmate.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 10*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)

	// untouched values keep their defaults
	assert.Equal(t, "flatmate", cfg.Database.Username)
}

func TestMalformedEnvValuesIgnored(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_EXPIRE_TIME", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}
