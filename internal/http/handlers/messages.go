package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
	"github.com/Muskan6505/Local-helpHub/internal/storage"
)

type MessageHandler struct {
	DB    *gorm.DB
	Store storage.ObjectStore
	Log   *logger.Logger
}

// UploadAttachment stores a chat attachment and returns the URL plus the
// server-derived type tag the client should carry in its sendMessage event.
func (h *MessageHandler) UploadAttachment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "attachment file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read upload"})
		return
	}
	defer f.Close()

	key := uuid.NewString() + filepath.Ext(fh.Filename)
	url, err := h.Store.Save(c.Request.Context(), key, f)
	if err != nil {
		h.Log.Error("attachment upload failed", "error", err, "user", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_url":  url,
		"file_type": storage.FileTypeFor(fh.Header.Get("Content-Type")),
	})
}

// History returns the non-deleted messages for a help request thread in
// creation order. Offline receivers catch up here.
func (h *MessageHandler) History(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}

	var msgs []models.Message
	err = h.DB.Preload("Sender", selectNameOnly).Preload("Receiver", selectNameOnly).
		Where("request_id = ? AND deleted = ?", uint(id64), false).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

// UnreadCount counts the caller's unseen, non-deleted messages.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var count int64
	err := h.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND seen = ? AND deleted = ?", userID, false, false).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to count messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Delete soft-deletes a message. Only the sender may delete; the row stays.
func (h *MessageHandler) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid message id"})
		return
	}

	var msg models.Message
	if err := h.DB.First(&msg, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "message not found"})
		return
	}
	if msg.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "you can only delete your own messages"})
		return
	}

	if err := h.DB.Model(&msg).Update("deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

func selectNameOnly(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}
