package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP returns the caller address used in request logs.
//
// Priority order:
// 1. first entry of X-Forwarded-For
// 2. X-Real-IP
// 3. RemoteAddr
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		// no port
		ip = c.Request.RemoteAddr
	}
	if net.ParseIP(ip) != nil {
		return ip
	}

	return "127.0.0.1"
}

// IsPrivateIP reports loopback and RFC 1918 / RFC 4193 addresses
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
