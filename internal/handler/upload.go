package handler

import (
	"net/http"

	"college-chat/internal/logger"
	"college-chat/internal/middleware"
	"college-chat/internal/model"
	"college-chat/internal/service"
	"college-chat/internal/session"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploads  *service.UploadService
	sessions *session.Store
	maxBytes int64
}

func NewUploadHandler(uploads *service.UploadService, sessions *session.Store, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, sessions: sessions, maxBytes: maxBytes}
}

// POST /api/upload/
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded or file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	name, text, err := h.uploads.Ingest(fh.Filename, f)
	if err != nil {
		logger.Warn("upload.rejected", "file", fh.Filename, "err", err)
		writeError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.sessions.SetUploadedContent(c.Request.Context(), sess.ID, text); err != nil {
		writeError(c, err)
		return
	}
	sess.UploadedContent = text
	logger.Info("upload.ok", "uid", sess.UserID, "file", name, "size", fh.Size, "chars", len(text))

	c.JSON(http.StatusOK, model.UploadResponse{
		Success:  true,
		Filename: name,
		Message:  "File uploaded and processed successfully",
	})
}

// GET /api/upload/
func (h *UploadHandler) List(c *gin.Context) {
	files, err := h.uploads.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// POST /api/upload/delete/:filename/
func (h *UploadHandler) Delete(c *gin.Context) {
	name := c.Param("filename")
	if err := h.uploads.Delete(name); err != nil {
		c.JSON(statusFor(err), model.DeleteFileResponse{Success: false, Message: err.Error()})
		return
	}
	logger.Info("upload.deleted", "file", name)
	c.JSON(http.StatusOK, model.DeleteFileResponse{Success: true, Message: "File deleted successfully"})
}
