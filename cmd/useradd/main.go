package main

import (
	"context"
	"flag"
	"os"

	"college-chat/internal/config"
	"college-chat/internal/database"
	"college-chat/internal/logger"
	"college-chat/internal/service"
)

// useradd creates a login account, e.g.
//
//	useradd -config etc/config-dev.yaml -username alice -password s3cret
func main() {
	configFile := flag.String("config", "", "config file")
	username := flag.String("username", "", "account name")
	password := flag.String("password", "", "account password")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	if *username == "" || *password == "" {
		logger.Error("both -username and -password are required")
		os.Exit(2)
	}

	cfg := config.Load(*configFile)
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	u, err := service.NewAuthService(db).CreateUser(context.Background(), *username, *password)
	if err != nil {
		logger.Error("create user failed", "username", *username, "err", err)
		os.Exit(1)
	}
	logger.Info("user created", "uid", u.ID, "username", u.Username)
}
