package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"college-chat/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// ReminderOp is one of the four operations served by the reminders route.
type ReminderOp int

const (
	ReminderList ReminderOp = iota
	ReminderCreate
	ReminderUpdate
	ReminderDelete
)

func (op ReminderOp) String() string {
	switch op {
	case ReminderList:
		return "list"
	case ReminderCreate:
		return "create"
	case ReminderUpdate:
		return "update"
	case ReminderDelete:
		return "delete"
	}
	return "unknown"
}

// ReminderOpFor maps an HTTP verb to its operation.
func ReminderOpFor(method string) (ReminderOp, bool) {
	switch method {
	case http.MethodGet:
		return ReminderList, true
	case http.MethodPost:
		return ReminderCreate, true
	case http.MethodPut:
		return ReminderUpdate, true
	case http.MethodDelete:
		return ReminderDelete, true
	}
	return 0, false
}

// ReminderService stores reminders. They are not scoped to an account.
type ReminderService struct{ db *gorm.DB }

func NewReminderService(db *gorm.DB) *ReminderService { return &ReminderService{db: db} }

func (s *ReminderService) List(ctx context.Context) ([]model.Reminder, error) {
	var out []model.Reminder
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	return out, nil
}

func (s *ReminderService) Create(ctx context.Context, req model.CreateReminderRequest) (*model.Reminder, error) {
	task := strings.TrimSpace(req.Task)
	if task == "" {
		return nil, ErrTaskRequired
	}
	r := model.Reminder{Task: req.Task}
	if req.Date != nil {
		d, err := ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		r.Date = d
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}
	return &r, nil
}

// Update applies the non-nil fields of req.
func (s *ReminderService) Update(ctx context.Context, req model.UpdateReminderRequest) (*model.Reminder, error) {
	if req.ID == nil {
		return nil, ErrIDRequired
	}
	r, err := s.get(ctx, *req.ID)
	if err != nil {
		return nil, err
	}
	if req.Task != nil {
		if strings.TrimSpace(*req.Task) == "" {
			return nil, ErrTaskRequired
		}
		r.Task = *req.Task
	}
	if req.Date != nil {
		d, err := ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		r.Date = d
	}
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	return r, nil
}

func (s *ReminderService) Delete(ctx context.Context, req model.DeleteReminderRequest) error {
	if req.ID == nil {
		return ErrIDRequired
	}
	res := s.db.WithContext(ctx).Delete(&model.Reminder{}, *req.ID)
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (s *ReminderService) get(ctx context.Context, id uint) (*model.Reminder, error) {
	var r model.Reminder
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return &r, nil
}

// ParseDate reads a YYYY-MM-DD string. The empty string means no date.
func ParseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := datatypes.Date(t)
	return &d, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(DateLayout)
}

func ToReminderResponse(r model.Reminder) model.ReminderResponse {
	return model.ReminderResponse{
		ID:        r.ID,
		Task:      r.Task,
		Date:      FormatDate(r.Date),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
