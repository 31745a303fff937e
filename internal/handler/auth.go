package handler

import (
	"net/http"

	"college-chat/internal/config"
	"college-chat/internal/logger"
	"college-chat/internal/middleware"
	"college-chat/internal/model"
	"college-chat/internal/service"
	"college-chat/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Store
	cfg      middleware.AuthConfig
	csrf     config.CSRFConfig
}

func NewAuthHandler(auth *service.AuthService, sessions *session.Store, cfg middleware.AuthConfig, csrf config.CSRFConfig) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cfg: cfg, csrf: csrf}
}

// POST /api/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx := c.Request.Context()
	u, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		writeError(c, err)
		return
	}

	sess, err := h.sessions.Create(ctx, u.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	token, err := middleware.IssueToken(h.cfg.Secret, u.ID, u.Username, sess.ID, h.cfg.TTL)
	if err != nil {
		writeError(c, err)
		return
	}
	middleware.SetSessionCookie(c, h.cfg, token)
	logger.Info("login.ok", "uid", u.ID, "name", u.Username)

	c.JSON(http.StatusOK, model.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    model.UserResponse{ID: u.ID, Username: u.Username},
	})
}

// POST /api/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			writeError(c, err)
			return
		}
	}
	middleware.SetSessionCookie(c, h.cfg, "")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/get-csrf-token/
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, err := middleware.CSRFToken(c, h.csrf.CookieName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	// readable by scripts so they can echo it in the header
	c.SetCookie(h.csrf.CookieName, token, 365*24*3600, "/", "", h.cfg.CookieSecure, false)
	c.JSON(http.StatusOK, gin.H{"csrftoken": token})
}
