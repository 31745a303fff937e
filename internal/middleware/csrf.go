package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	"college-chat/internal/config"

	"github.com/gin-gonic/gin"
)

const csrfTokenBytes = 32

// CSRF enforces the double-submit cookie check on unsafe requests that
// authenticate with the session cookie. Bearer-token clients are exempt
// because browsers never attach that header on their own.
func CSRF(cfg config.CSRFConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}
		if c.GetBool(KeyBearer) {
			c.Next()
			return
		}

		if origin := c.GetHeader("Origin"); origin != "" && !OriginAllowed(origin, c.Request.Host, cfg.TrustedOrigins) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF failed: origin not trusted"})
			return
		}

		cookie, err := c.Cookie(cfg.CookieName)
		header := c.GetHeader(cfg.HeaderName)
		if err != nil || cookie == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF failed: token missing or incorrect"})
			return
		}
		c.Next()
	}
}

// OriginAllowed reports whether origin is the request's own host or one of
// the trusted origins.
func OriginAllowed(origin, host string, trusted []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, host) {
		return true
	}
	for _, t := range trusted {
		if strings.EqualFold(strings.TrimRight(t, "/"), strings.TrimRight(origin, "/")) {
			return true
		}
	}
	return false
}

// CSRFToken returns the caller's current token when it looks valid, or
// mints a new one.
func CSRFToken(c *gin.Context, cookieName string) (string, error) {
	if v, err := c.Cookie(cookieName); err == nil && validToken(v) {
		return v, nil
	}
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func validToken(v string) bool {
	if len(v) != csrfTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(v)
	return err == nil
}
