package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
	"github.com/Muskan6505/Local-helpHub/internal/tags"
)

// Haversine distance in km between the request's lat/lng columns and the
// bound point. The radius filter lives in the database, not in Go.
const haversineKm = "(6371 * ACOS(LEAST(1.0," +
	" COS(RADIANS(?)) * COS(RADIANS(lat)) * COS(RADIANS(lng) - RADIANS(?))" +
	" + SIN(RADIANS(?)) * SIN(RADIANS(lat)))))"

type RequestHandler struct {
	DB   *gorm.DB
	Tags *tags.Generator
	Log  *logger.Logger
}

type createRequestReq struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Lat         *float64 `json:"lat" binding:"required"`
	Lng         *float64 `json:"lng" binding:"required"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	// Best effort: an unreachable tag service must never block a request.
	generated := h.Tags.Generate(c.Request.Context(), req.Title, req.Description)

	hr := models.HelpRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.StatusOpen,
		Priority:    req.Priority,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		Tags:        strings.Join(generated, ","),
		RequesterID: userID,
	}
	if err := h.DB.Create(&hr).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to create help request", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": &hr})
}

// List returns help requests matching the query filters: status, category,
// priority, keyword, tags, date range and geo radius.
func (h *RequestHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.HelpRequest{}).Preload("Requester")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("priority = ?", priority)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if tagList := c.Query("tags"); tagList != "" {
		var clauses []string
		var args []any
		for _, tag := range strings.Split(tagList, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			clauses = append(clauses, "FIND_IN_SET(?, tags) > 0")
			args = append(args, tag)
		}
		if len(clauses) > 0 {
			q = q.Where(strings.Join(clauses, " OR "), args...)
		}
	}
	if start := c.Query("startDate"); start != "" {
		if t, err := parseDate(start); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if end := c.Query("endDate"); end != "" {
		if t, err := parseDate(end); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	radius, errRad := strconv.ParseFloat(c.Query("radius"), 64)
	if errLat == nil && errLng == nil && errRad == nil {
		q = q.Where(haversineKm+" <= ?", lat, lng, lat, radius)
	}

	var requests []models.HelpRequest
	if err := q.Order("created_at desc").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch help requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}

	var hr models.HelpRequest
	if err := h.DB.Preload("Requester").First(&hr, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "help request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": &hr})
}

type updateRequestReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

func (h *RequestHandler) Update(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}

	var hr models.HelpRequest
	if err := h.DB.First(&hr, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "help request not found"})
		return
	}
	if hr.RequesterID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to update this request"})
		return
	}

	var req updateRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lng != nil {
		updates["lng"] = *req.Lng
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&hr).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update help request"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": &hr})
}

func (h *RequestHandler) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}

	var hr models.HelpRequest
	if err := h.DB.First(&hr, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "help request not found"})
		return
	}
	if hr.RequesterID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to delete this request"})
		return
	}

	if err := h.DB.Delete(&hr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete help request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "help request deleted"})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
