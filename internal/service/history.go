package service

import (
	"context"
	"fmt"

	"college-chat/internal/model"

	"gorm.io/gorm"
)

const MaxHistory = 50

// HistoryService is the per-account chat log.
type HistoryService struct{ db *gorm.DB }

func NewHistoryService(db *gorm.DB) *HistoryService { return &HistoryService{db: db} }

// SaveTurn stores the user message and the bot reply together. Either both
// rows are written or neither is.
func (s *HistoryService) SaveTurn(ctx context.Context, userID int, userText, botText string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertMessage(tx, userID, model.SenderUser, userText); err != nil {
			return err
		}
		return insertMessage(tx, userID, model.SenderBot, botText)
	})
}

func insertMessage(tx *gorm.DB, userID int, sender model.Sender, text string) error {
	if !sender.Valid() {
		return fmt.Errorf("invalid sender %q", sender)
	}
	m := model.ChatMessage{UserID: userID, Sender: sender, Message: text}
	if err := tx.Create(&m).Error; err != nil {
		return fmt.Errorf("insert %s message: %w", sender, err)
	}
	return nil
}

// Recent returns up to limit messages, newest first. limit is clamped to
// 1..MaxHistory.
func (s *HistoryService) Recent(ctx context.Context, userID, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}
	var msgs []model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return msgs, nil
}
