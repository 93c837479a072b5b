package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flatmate/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(expire time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "unit-test-secret",
		ExpireTime: expire,
		Issuer:     "flatmate",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService(time.Hour)

	token, err := svc.GenerateToken("42", map[string]interface{}{"name": "Asha"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "flatmate", claims.Issuer)
	assert.Equal(t, "Asha", claims.Data["name"])
}

func TestTokenRequiresSubject(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.GenerateToken("", nil)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := testService(-time.Minute)

	token, err := svc.GenerateToken("42", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := testService(time.Hour).GenerateToken("42", nil)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:     "some-other-secret",
		ExpireTime: time.Hour,
		Issuer:     "flatmate",
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongIssuerRejected(t *testing.T) {
	foreign := NewJWTService(config.JWTConfig{
		Secret:     "unit-test-secret",
		ExpireTime: time.Hour,
		Issuer:     "someone-else",
	})
	token, err := foreign.GenerateToken("42", nil)
	require.NoError(t, err)

	_, err = testService(time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(time.Hour)

	router := gin.New()
	router.GET("/me", svc.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "name": GetName(c)})
	})

	token, err := svc.GenerateToken("42", map[string]interface{}{"name": "Asha"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"name":"Asha"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		bad, err := svc.GenerateToken("not-a-number", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
