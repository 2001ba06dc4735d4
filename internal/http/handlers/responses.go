package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
)

type ResponseHandler struct {
	DB  *gorm.DB
	Log *logger.Logger
}

type createResponseReq struct {
	HelpRequestID uint   `json:"help_request_id" binding:"required"`
	Message       string `json:"message"`
}

func (h *ResponseHandler) Create(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req createResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var hr models.HelpRequest
	if err := h.DB.First(&hr, req.HelpRequestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "help request not found"})
		return
	}

	var existing models.Response
	err := h.DB.Where("help_request_id = ? AND helper_id = ?", req.HelpRequestID, userID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "already responded"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check responses"})
		return
	}

	resp := models.Response{
		HelpRequestID: req.HelpRequestID,
		HelperID:      userID,
		Message:       req.Message,
		Status:        models.ResponsePending,
	}
	if err := h.DB.Create(&resp).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to create response", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": &resp})
}

// ListMine returns the caller's responses with their help requests.
func (h *ResponseHandler) ListMine(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var responses []models.Response
	err := h.DB.Preload("HelpRequest").
		Where("helper_id = ?", userID).
		Order("created_at desc").
		Find(&responses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// ListByRequest returns all responses for a help request with helper info.
func (h *ResponseHandler) ListByRequest(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("helpRequest"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}

	var responses []models.Response
	err = h.DB.Preload("Helper").
		Where("help_request_id = ?", uint(id64)).
		Order("created_at asc").
		Find(&responses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

type updateResponseStatusReq struct {
	Status string `json:"status" binding:"required,oneof=Pending Accepted Declined"`
}

// UpdateStatus lets the help request's owner accept or decline a response.
func (h *ResponseHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id64, err := strconv.ParseUint(c.Param("responseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid response id"})
		return
	}

	var req updateResponseStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var resp models.Response
	if err := h.DB.Preload("HelpRequest").First(&resp, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "response not found"})
		return
	}
	if resp.HelpRequest.RequesterID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to update this response"})
		return
	}

	if err := h.DB.Model(&resp).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": &resp})
}
