// Package session keeps per-login server state, most notably the text of
// the last document the user uploaded.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"college-chat/internal/logger"
	"college-chat/internal/model"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

// Context is the per-request view of a session. Handlers receive it from
// the auth middleware instead of reading ambient state.
type Context struct {
	ID              string
	UserID          int
	UploadedContent string
	ExpiresAt       time.Time
}

type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

func (s *Store) Create(ctx context.Context, userID int) (*Context, error) {
	row := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return toContext(row), nil
}

// Get returns ErrNotFound for unknown and expired sessions alike.
func (s *Store) Get(ctx context.Context, id string) (*Context, error) {
	var row model.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return toContext(row), nil
}

// SetUploadedContent replaces the document text attached to the session.
func (s *Store) SetUploadedContent(ctx context.Context, id, text string) error {
	return s.update(ctx, id, map[string]interface{}{"uploaded_content": text})
}

// Touch pushes the expiry out by one TTL from now.
func (s *Store) Touch(ctx context.Context, id string) error {
	return s.update(ctx, id, map[string]interface{}{"expires_at": s.now().Add(s.ttl)})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// StartSweeper purges expired sessions on a cron schedule such as
// "@every 1h". The returned func stops the scheduler and waits for a
// running purge to finish.
func (s *Store) StartSweeper(schedule string) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.PurgeExpired(context.Background())
		if err != nil {
			logger.Error("session.sweep failed", "err", err)
			return
		}
		if n > 0 {
			logger.Info("session.sweep", "purged", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sweeper: %w", err)
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}

func (s *Store) update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND expires_at > ?", id, s.now()).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toContext(row model.Session) *Context {
	return &Context{
		ID:              row.ID,
		UserID:          row.UserID,
		UploadedContent: row.UploadedContent,
		ExpiresAt:       row.ExpiresAt,
	}
}
