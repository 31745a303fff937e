package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"college-chat/internal/config"
	"college-chat/internal/database"
	"college-chat/internal/logger"
	"college-chat/internal/server"
	"college-chat/internal/service"
	"college-chat/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	uploads, err := service.NewUploadService(cfg.Upload.Dir, cfg.Upload.URLPrefix)
	if err != nil {
		logger.Error("upload dir init failed", "err", err)
		os.Exit(1)
	}

	ai := service.NewAIService(cfg.LLM, cfg.LLMTimeout())
	if !ai.Configured() {
		logger.Warn("llm api key not set, chat answers will fail", "base_url", cfg.LLM.BaseURL)
	}

	sessions := session.NewStore(db, cfg.SessionTTL())
	stopSweeper, err := sessions.StartSweeper(cfg.Session.SweepSchedule)
	if err != nil {
		logger.Error("session sweeper init failed", "err", err)
		os.Exit(1)
	}

	r := server.NewRouter(cfg, server.Deps{DB: db, AI: ai, Sessions: sessions, Uploads: uploads})
	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	go func() {
		logger.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	stopSweeper()
}
