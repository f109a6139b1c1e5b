package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================================
// CONSTANTS
// ===================================

const (
	// Cookie settings
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	// Context keys
	ContextKeySessionID = "session_id"
)

// ===================================
// MIDDLEWARE CONFIGURATION
// ===================================

// SessionConfig holds the session cookie attributes
type SessionConfig struct {
	CookieDomain   string // "" for current domain
	CookiePath     string // Default: "/"
	CookieSecure   bool   // true for HTTPS only
	CookieSameSite http.SameSite
}

// DefaultSessionConfig returns the production cookie settings
func DefaultSessionConfig(secure bool) SessionConfig {
	return SessionConfig{
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// ===================================
// SESSION MIDDLEWARE
// ===================================

// SessionMiddleware gives every visitor a stable session id.
// The cart is keyed by it, so it must run before cart handlers.
//
// Flow:
// 1. Read session_id cookie
// 2. If missing or not a UUID → generate a new one and set the cookie
// 3. Refresh the cookie so the session slides forward on activity
// 4. Set session_id in context for handlers
func SessionMiddleware(config SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := getSessionID(c)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		setSessionCookie(c, sessionID, config)
		c.Set(ContextKeySessionID, sessionID)

		c.Next()
	}
}

// ===================================
// HELPER FUNCTIONS
// ===================================

// getSessionID retrieves session ID from cookie
func getSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return ""
	}

	// Validate UUID format for security
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}

	return sessionID
}

func setSessionCookie(c *gin.Context, sessionID string, config SessionConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		SessionMaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true, // httpOnly
	)
}

// GetSessionID retrieves session ID from context
func GetSessionID(c *gin.Context) string {
	sessionID, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}

	sid, ok := sessionID.(string)
	if !ok {
		return ""
	}

	return sid
}
