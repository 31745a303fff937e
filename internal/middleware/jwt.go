package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"college-chat/internal/logger"
	"college-chat/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyUserID   = "user_id"
	KeyUserName = "user_name"
	KeySession  = "session"
	KeyBearer   = "bearer_auth"
)

// renewWindow is how close to expiry a token must be before it is reissued.
const renewWindow = 24 * time.Hour

// AuthConfig is shared by the login handler and the Auth middleware.
type AuthConfig struct {
	Secret       []byte
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// IssueToken signs a session token for uid/name bound to session sid.
func IssueToken(secret []byte, uid int, name, sid string, ttl time.Duration) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  uid,
		"name": name,
		"sid":  sid,
		"exp":  time.Now().Add(ttl).Unix(),
	}).SignedString(secret)
}

// SetSessionCookie stores token in the HttpOnly session cookie. An empty
// token clears it.
func SetSessionCookie(c *gin.Context, cfg AuthConfig, token string) {
	maxAge := int(cfg.TTL.Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, maxAge, "/", "", cfg.CookieSecure, true)
}

// Auth accepts a bearer token or the session cookie, and requires the
// session it names to still exist.
func Auth(cfg AuthConfig, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, bearer := tokenFrom(c, cfg.CookieName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return cfg.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		uid, _ := claims["uid"].(float64)
		name, _ := claims["name"].(string)
		sid, _ := claims["sid"].(string)

		sess, err := sessions.Get(c.Request.Context(), sid)
		if errors.Is(err, session.ErrNotFound) || (err == nil && sess.UserID != int(uid)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(KeyUserID, int(uid))
		c.Set(KeyUserName, name)
		c.Set(KeySession, sess)
		c.Set(KeyBearer, bearer)

		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < renewWindow {
				renew(c, cfg, sessions, int(uid), name, sid, bearer)
			}
		}

		c.Next()
	}
}

func renew(c *gin.Context, cfg AuthConfig, sessions *session.Store, uid int, name, sid string, bearer bool) {
	if err := sessions.Touch(c.Request.Context(), sid); err != nil {
		logger.Warn("session.touch failed", "sid", sid, "err", err)
		return
	}
	newToken, err := IssueToken(cfg.Secret, uid, name, sid, cfg.TTL)
	if err != nil {
		return
	}
	c.Header("X-New-Token", newToken)
	if !bearer {
		SetSessionCookie(c, cfg, newToken)
	}
}

func tokenFrom(c *gin.Context, cookieName string) (string, bool) {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return auth[7:], true
	}
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v, false
	}
	return "", false
}

// CurrentSession returns the session loaded by Auth.
func CurrentSession(c *gin.Context) *session.Context {
	if v, ok := c.Get(KeySession); ok {
		if s, ok := v.(*session.Context); ok {
			return s
		}
	}
	return nil
}
