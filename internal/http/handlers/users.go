package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
	"github.com/Muskan6505/Local-helpHub/internal/storage"
)

type UserHandler struct {
	DB    *gorm.DB
	Store storage.ObjectStore
	Log   *logger.Logger
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": &u})
}

func (h *UserHandler) Get(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	var u models.User
	if err := h.DB.First(&u, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": &u})
}

type updateProfileReq struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	Bio     string `json:"bio"`
}

func (h *UserHandler) Update(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	updates := map[string]any{"name": req.Name, "contact": req.Contact, "bio": req.Bio}
	if err := h.DB.Model(&u).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": &u})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	res := h.DB.Delete(&models.User{}, userID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete account"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	fh, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar must be an image"})
		return
	}

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
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
		h.Log.Error("avatar upload failed", "error", err, "user", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "upload failed"})
		return
	}

	old := u.Avatar
	if err := h.DB.Model(&u).Update("avatar", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update avatar"})
		return
	}
	if old != "" {
		if err := h.Store.Delete(c.Request.Context(), old); err != nil {
			h.Log.Warn("failed to delete old avatar", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": &u})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	if u.Avatar != "" {
		if err := h.Store.Delete(c.Request.Context(), u.Avatar); err != nil {
			h.Log.Warn("failed to delete avatar object", "error", err)
		}
		if err := h.DB.Model(&u).Update("avatar", "").Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to clear avatar"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": &u})
}
