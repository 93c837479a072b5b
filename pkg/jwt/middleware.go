package jwt

import (
	"strconv"
	"strings"

	"flatmate/pkg/logger"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUserIDKey is the gin.Context key holding the numeric user id.
	ContextUserIDKey = "user_id"
	// ContextNameKey is the gin.Context key holding the display name.
	ContextNameKey = "user_name"
	// ContextClaimsKey is the gin.Context key holding the parsed claims.
	ContextClaimsKey = "jwt_claims"
)

// AuthMiddleware extracts Authorization: Bearer <token>, validates it and
// stores the acting user in the gin context. Requests without a valid
// identity never reach the handler.
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.Unauthorized(c, "token is empty")
			c.Abort()
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("jwt validation failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil || userID == 0 {
			response.Unauthorized(c, "token subject invalid")
			c.Abort()
			return
		}

		name := ""
		if claims.Data != nil {
			if n, ok := claims.Data["name"].(string); ok {
				name = n
			}
		}

		c.Set(ContextUserIDKey, uint(userID))
		c.Set(ContextNameKey, name)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// GetUserID returns the authenticated user id, 0 if unauthenticated.
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}

// GetName returns the authenticated user's display name.
func GetName(c *gin.Context) string {
	if name, exists := c.Get(ContextNameKey); exists {
		if n, ok := name.(string); ok {
			return n
		}
	}
	return ""
}

// GetClaims returns the parsed JWT claims, nil if unauthenticated.
func GetClaims(c *gin.Context) *CustomClaims {
	if claims, exists := c.Get(ContextClaimsKey); exists {
		if cc, ok := claims.(*CustomClaims); ok {
			return cc
		}
	}
	return nil
}
