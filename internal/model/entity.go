package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Sender is the author of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

func (s Sender) Valid() bool { return s == SenderUser || s == SenderBot }

type ChatMessage struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Sender    Sender    `gorm:"size:10;not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

// Reminder is shared by every account; there is no owner column.
type Reminder struct {
	ID        uint            `gorm:"primaryKey"`
	Task      string          `gorm:"size:255;not null"`
	Date      *datatypes.Date `gorm:"type:date"`
	CreatedAt time.Time       `gorm:"autoCreateTime;index"`
}

// Session holds server-side state for one login.
type Session struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          int       `gorm:"index;not null"`
	User            User      `gorm:"constraint:OnDelete:CASCADE"`
	UploadedContent string    `gorm:"type:text"`
	ExpiresAt       time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (User) TableName() string        { return "users" }
func (ChatMessage) TableName() string { return "chat_messages" }
func (Reminder) TableName() string    { return "reminders" }
func (Session) TableName() string     { return "sessions" }
