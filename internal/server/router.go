package server

import (
	"net/http"

	"college-chat/internal/config"
	"college-chat/internal/handler"
	"college-chat/internal/middleware"
	"college-chat/internal/service"
	"college-chat/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are the long-lived services the router is built from.
type Deps struct {
	DB       *gorm.DB
	AI       service.Answerer
	Sessions *session.Store
	Uploads  *service.UploadService
}

func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	authCfg := middleware.AuthConfig{
		Secret:       []byte(cfg.SecretKey),
		TTL:          cfg.SessionTTL(),
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.Secure,
	}

	authH := handler.NewAuthHandler(service.NewAuthService(d.DB), d.Sessions, authCfg, cfg.CSRF)
	chatH := handler.NewChatHandler(d.AI, service.NewHistoryService(d.DB))
	uploadH := handler.NewUploadHandler(d.Uploads, d.Sessions, cfg.MaxUploadBytes())
	reminderH := handler.NewReminderHandler(service.NewReminderService(d.DB))

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	r.Use(middleware.RequestLog(), middleware.Recovery())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", cfg.CSRF.HeaderName, "X-Requested-With"},
			ExposeHeaders:    []string{"X-New-Token"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(cfg.Upload.URLPrefix, d.Uploads.Dir())

	r.POST("/api/login/", authH.Login)
	r.GET("/api/get-csrf-token/", authH.CSRFToken)

	api := r.Group("/api", middleware.Auth(authCfg, d.Sessions), middleware.CSRF(cfg.CSRF))
	api.POST("/logout/", authH.Logout)
	api.POST("/upload/", uploadH.Upload)
	api.GET("/upload/", uploadH.List)
	api.POST("/upload/delete/:filename/", uploadH.Delete)
	api.POST("/chat/", chatH.Chat)
	api.GET("/history/", chatH.History)
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		api.Handle(m, "/reminders/", reminderH.Reminders)
	}

	return r
}
