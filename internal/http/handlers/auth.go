package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
	"github.com/Muskan6505/Local-helpHub/internal/tokens"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *tokens.Manager
	Log    *logger.Logger

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

type registerReq struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Contact  string   `json:"contact" binding:"required"`
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
	Bio      string   `json:"bio"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "user with this email already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
		return
	}

	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Contact:      req.Contact,
		Lat:          *req.Lat,
		Lng:          *req.Lng,
		Bio:          req.Bio,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to create user", "error": err.Error()})
		return
	}

	h.issueSession(c, &u, http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var u models.User
	if err := h.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	h.issueSession(c, &u, http.StatusOK)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if refresh, err := c.Cookie("refreshToken"); err == nil && refresh != "" {
		if err := h.Tokens.Revoke(c.Request.Context(), refresh); err != nil {
			h.Log.Warn("failed to revoke refresh token", "error", err)
		}
	}

	h.clearCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Refresh rotates the refresh token and issues a fresh access token. It is
// public: the access token may already be expired when this is called.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refreshToken")
	if err != nil || refresh == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "refresh token required"})
		return
	}

	userID, next, err := h.Tokens.Rotate(c.Request.Context(), refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid refresh token"})
		return
	}

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user no longer exists"})
		return
	}

	access, err := h.Tokens.IssueAccess(&u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}

	h.setCookies(c, access, next)
	c.JSON(http.StatusOK, gin.H{"access_token": access, "user": &u})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var u models.User
	if err := h.DB.First(&u, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid current password"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
		return
	}
	if err := h.DB.Model(&u).Update("password_hash", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *AuthHandler) issueSession(c *gin.Context, u *models.User, status int) {
	access, err := h.Tokens.IssueAccess(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	refresh, err := h.Tokens.IssueRefresh(c.Request.Context(), u.ID)
	if err != nil {
		h.Log.Error("failed to issue refresh token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}

	h.setCookies(c, access, refresh)
	c.JSON(status, gin.H{"access_token": access, "user": u})
}

func (h *AuthHandler) setCookies(c *gin.Context, access, refresh string) {
	c.SetCookie("accessToken", access, int(h.AccessTTL.Seconds()), "/", "", h.Secure, true)
	c.SetCookie("refreshToken", refresh, int(h.RefreshTTL.Seconds()), "/", "", h.Secure, true)
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.Secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.Secure, true)
}
