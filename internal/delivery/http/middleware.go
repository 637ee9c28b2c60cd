package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// originMatcher resolves request origins against the configured allow-list.
// Patterns ending in "*" match by prefix, which covers the usual development
// setup of http://localhost:* with an arbitrary dev-server port.
type originMatcher struct {
	exact    map[string]bool
	prefixes []string
}

func newOriginMatcher(allowedOrigins []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]bool, len(allowedOrigins))}
	for _, pattern := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			m.prefixes = append(m.prefixes, prefix)
		} else {
			m.exact[pattern] = true
		}
	}
	return m
}

func (m *originMatcher) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if m.exact[origin] {
		return true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// CORSMiddleware reflects allowed origins back to the browser client. The
// allow-list is resolved once at router construction, not per request.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	matcher := newOriginMatcher(allowedOrigins)

	return func(c *gin.Context) {
		// Responses differ by origin even on the same URL.
		c.Writer.Header().Add("Vary", "Origin")

		if origin := c.Request.Header.Get("Origin"); matcher.allows(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			if c.Request.Method == http.MethodOptions {
				c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				c.Writer.Header().Set("Access-Control-Max-Age", "3600")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
