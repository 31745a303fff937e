package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"college-chat/internal/logger"
	"college-chat/internal/model"
	"college-chat/internal/service"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct{ svc *service.ReminderService }

func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// Reminders serves GET/POST/PUT/DELETE /api/reminders/.
func (h *ReminderHandler) Reminders(c *gin.Context) {
	op, ok := service.ReminderOpFor(c.Request.Method)
	if !ok {
		MethodNotAllowed(c)
		return
	}
	switch op {
	case service.ReminderList:
		h.list(c)
	case service.ReminderCreate:
		h.create(c)
	case service.ReminderUpdate:
		h.update(c)
	case service.ReminderDelete:
		h.delete(c)
	}
}

func (h *ReminderHandler) list(c *gin.Context) {
	rs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]model.ReminderResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, service.ToReminderResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReminderHandler) create(c *gin.Context) {
	var req model.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request."})
		return
	}
	r, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("reminder.created", "id", r.ID)
	c.JSON(http.StatusCreated, service.ToReminderResponse(*r))
}

func (h *ReminderHandler) update(c *gin.Context) {
	var req model.UpdateReminderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request."})
		return
	}
	if req.ID == nil {
		id, err := queryID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		req.ID = id
	}
	r, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("reminder.updated", "id", r.ID)
	c.JSON(http.StatusOK, service.ToReminderResponse(*r))
}

func (h *ReminderHandler) delete(c *gin.Context) {
	var req model.DeleteReminderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request."})
		return
	}
	if req.ID == nil {
		id, err := queryID(c)
		if err != nil {
			writeError(c, err)
			return
		}
		req.ID = id
	}
	if err := h.svc.Delete(c.Request.Context(), req); err != nil {
		writeError(c, err)
		return
	}
	logger.Info("reminder.deleted", "id", *req.ID)
	c.JSON(http.StatusOK, model.DeleteReminderResponse{Message: "Reminder deleted"})
}

// bindOptionalJSON treats an empty body as an empty object.
func bindOptionalJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// queryID reads ?id=. A missing id is returned as nil so the service
// reports it.
func queryID(c *gin.Context) (*uint, error) {
	raw := c.Query("id")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, service.ErrIDRequired
	}
	id := uint(n)
	return &id, nil
}
