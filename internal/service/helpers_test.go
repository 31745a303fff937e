package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"college-chat/internal/config"
	"college-chat/internal/database"
	"college-chat/internal/logger"
	"college-chat/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Discard()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano()),
	})
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) model.User {
	t.Helper()
	u := model.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}
