package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"academy-backend/internal/shared/authz"
	"academy-backend/internal/shared/response"
	"academy-backend/pkg/jwt"
	"academy-backend/pkg/logger"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyActor  = "actor"
)

// AuthMiddleware rejects requests without a valid access token
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract "Bearer <token>"
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		// 2. Verify signature, expiry and token type
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			logger.Info("Rejected access token", map[string]interface{}{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			})
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 3. Publish the actor for handlers
		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a valid token is present
// and lets anonymous requests through otherwise
func OptionalAuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			// invalid token behaves like no token
			c.Next()
			return
		}

		setActor(c, claims)
		c.Next()
	}
}

// ActorFrom returns the request's actor, or nil for anonymous requests
func ActorFrom(c *gin.Context) *authz.Actor {
	v, exists := c.Get(ContextKeyActor)
	if !exists {
		return nil
	}
	actor, _ := v.(*authz.Actor)
	return actor
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setActor(c *gin.Context, claims *jwt.Claims) {
	actor := &authz.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   authz.ParseRole(claims.Role),
	}
	c.Set(ContextKeyUserID, actor.UserID)
	c.Set(ContextKeyRole, string(actor.Role))
	c.Set(ContextKeyActor, actor)
}
