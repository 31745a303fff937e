package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrTaskRequired     = errors.New("task is required")
	ErrIDRequired       = errors.New("reminder id is required")
	ErrInvalidDate      = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrReminderNotFound = errors.New("reminder not found")

	ErrFileNotFound = errors.New("file not found")
	ErrInvalidName  = errors.New("invalid file name")

	ErrEmptyPrompt       = errors.New("prompt is empty")
	ErrAnswerUnavailable = errors.New("answer service unavailable")
)
