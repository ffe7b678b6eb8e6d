package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/utils"

	"github.com/gin-gonic/gin"
)

// GetKeynotes lists active keynote speakers for the public pages.
func GetKeynotes(c *gin.Context) {
	var keynotes []models.Keynote
	if err := config.DB.Preload("Photo").
		Where("delete_at IS NULL AND is_active = ?", true).
		Order("display_order, keynote_id").
		Find(&keynotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch keynotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"keynotes": keynotes,
		"total":    len(keynotes),
	})
}

type keynoteRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Affiliation  string `json:"affiliation" binding:"required"`
	Bio          string `json:"bio"`
	TalkTitle    string `json:"talk_title"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// CreateKeynote adds a keynote speaker (admin).
func CreateKeynote(c *gin.Context) {
	var req keynoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	keynote := models.Keynote{
		FullName:     utils.SanitizeInput(req.FullName),
		Affiliation:  utils.SanitizeInput(req.Affiliation),
		Bio:          utils.SanitizeInput(req.Bio),
		TalkTitle:    utils.SanitizeInput(req.TalkTitle),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		CreateAt:     now,
		UpdateAt:     now,
	}
	if req.IsActive != nil {
		keynote.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&keynote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create keynote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"keynote": keynote,
	})
}

// UpdateKeynote edits a keynote speaker (admin).
func UpdateKeynote(c *gin.Context) {
	keynoteID, err := strconv.Atoi(c.Param("id"))
	if err != nil || keynoteID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keynote ID"})
		return
	}

	var keynote models.Keynote
	if err := config.DB.Where("keynote_id = ? AND delete_at IS NULL", keynoteID).
		First(&keynote).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keynote not found"})
		return
	}

	var req keynoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keynote.FullName = utils.SanitizeInput(req.FullName)
	keynote.Affiliation = utils.SanitizeInput(req.Affiliation)
	keynote.Bio = utils.SanitizeInput(req.Bio)
	keynote.TalkTitle = utils.SanitizeInput(req.TalkTitle)
	keynote.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		keynote.IsActive = *req.IsActive
	}
	keynote.UpdateAt = time.Now()

	if err := config.DB.Save(&keynote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update keynote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"keynote": keynote,
	})
}

// UploadKeynotePhoto attaches a photo to a keynote speaker (admin).
func UploadKeynotePhoto(c *gin.Context) {
	keynoteID, err := strconv.Atoi(c.Param("id"))
	if err != nil || keynoteID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keynote ID"})
		return
	}
	adminID, _ := getCurrentUserID(c)

	var keynote models.Keynote
	if err := config.DB.Where("keynote_id = ? AND delete_at IS NULL", keynoteID).
		First(&keynote).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keynote not found"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	upload, err := storeUploadedFile(c, file, "keynote_photo", adminID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&models.Keynote{}).
		Where("keynote_id = ?", keynoteID).
		Updates(map[string]interface{}{
			"photo_file_id": upload.FileID,
			"update_at":     time.Now(),
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file":    upload,
	})
}

// DeleteKeynote soft-deletes a keynote speaker (admin).
func DeleteKeynote(c *gin.Context) {
	keynoteID, err := strconv.Atoi(c.Param("id"))
	if err != nil || keynoteID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keynote ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Keynote{}).
		Where("keynote_id = ? AND delete_at IS NULL", keynoteID).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete keynote"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keynote not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Keynote deleted",
	})
}
