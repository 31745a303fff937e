package handler

import (
	"errors"
	"net/http"

	"college-chat/internal/extract"
	"college-chat/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP codes. Anything unknown is a 500
// and its message is passed through.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskRequired),
		errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, service.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAnswerUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
