package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/domain"
)

// UserIDKey is the gin context key holding the authenticated user's ID
const UserIDKey = "user_id"

// Authenticator resolves a bearer token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthConfig configures the auth middleware
type AuthConfig struct {
	// APIKey grants access when sent as X-API-Key or a bearer token
	APIKey string
	// Tokens resolves session tokens; nil accepts API keys only
	Tokens Authenticator
	// RequireToken rejects anonymous requests even without an API key
	RequireToken bool
}

// Auth returns an authentication middleware. Without an API key and with
// RequireToken unset the group is open, but a valid session token still
// identifies the user.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		var bearer string
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			bearer = strings.TrimPrefix(auth, "Bearer ")
		}

		if cfg.APIKey != "" && (key == cfg.APIKey || bearer == cfg.APIKey) {
			c.Next()
			return
		}

		if bearer != "" && cfg.Tokens != nil {
			if user, err := cfg.Tokens.Authenticate(c.Request.Context(), bearer); err == nil {
				c.Set(UserIDKey, user.ID)
				c.Next()
				return
			}
		}

		if cfg.APIKey == "" && !cfg.RequireToken {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
	}
}

// UserID returns the authenticated user's ID, or "" for anonymous requests
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
