package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/domain/identity"
	"github.com/ngkart/backend/internal/infrastructure/auth"
)

// Context keys for the authenticated actor
const (
	ActorKey      = "actor"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	Verifier *auth.TokenVerifier
	// Required aborts requests without a valid token. When false the
	// middleware extracts the actor if present and lets anonymous
	// requests through; capability checks downstream decide access.
	Required bool
	Logger   *zap.Logger
}

// Authenticate extracts and verifies the bearer token, storing the
// resulting actor in the context
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			if cfg.Required {
				abortUnauthorized(c, "Authentication required")
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		actor, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Token verification failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				message = "Token has expired"
			}
			abortUnauthorized(c, message)
			return
		}

		c.Set(ActorKey, *actor)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetActor retrieves the authenticated actor from the context. A zero
// actor means the caller is anonymous.
func GetActor(c *gin.Context) identity.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(identity.Actor); ok {
			return actor
		}
	}
	return identity.Actor{}
}
