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

// SendMessage creates a message addressed to the editorial office inbox or,
// for office staff, to a specific user.
func SendMessage(c *gin.Context) {
	senderID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	roleID, _ := getCurrentRoleID(c)

	var req struct {
		RecipientID *int   `json:"recipient_id"`
		ParentID    *int   `json:"parent_id"`
		Subject     string `json:"subject" binding:"required"`
		Body        string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Participants can only write to the office inbox.
	if req.RecipientID != nil && roleID != models.RoleEditor && roleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if req.RecipientID != nil {
		var recipient models.User
		if err := config.DB.Where("user_id = ? AND delete_at IS NULL", *req.RecipientID).
			First(&recipient).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}
	}

	if req.ParentID != nil {
		var parent models.Message
		if err := config.DB.Where("message_id = ? AND delete_at IS NULL", *req.ParentID).
			First(&parent).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent message not found"})
			return
		}
	}

	message := models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		ParentID:    req.ParentID,
		Subject:     utils.SanitizeInput(req.Subject),
		Body:        utils.SanitizeInput(req.Body),
		CreateAt:    time.Now(),
	}

	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
	})
}

// GetMyMessages lists messages sent by or addressed to the caller.
func GetMyMessages(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var messages []models.Message
	if err := config.DB.Preload("Sender").
		Preload("Recipient").
		Where("delete_at IS NULL").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("create_at DESC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"total":    len(messages),
	})
}

// ListOfficeMessages returns the editorial office inbox (messages with no
// specific recipient).
func ListOfficeMessages(c *gin.Context) {
	var messages []models.Message
	query := config.DB.Preload("Sender").
		Where("delete_at IS NULL").
		Where("recipient_id IS NULL")

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Order("create_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"total":    len(messages),
	})
}

// MarkMessageRead marks a message read by its recipient.
func MarkMessageRead(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("id"))
	if err != nil || messageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	var message models.Message
	if err := config.DB.Where("message_id = ? AND delete_at IS NULL", messageID).
		First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	isOfficeStaff := roleID == models.RoleEditor || roleID == models.RoleAdmin
	isRecipient := message.RecipientID != nil && *message.RecipientID == userID
	if !isRecipient && !(message.RecipientID == nil && isOfficeStaff) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if err := config.DB.Model(&models.Message{}).
		Where("message_id = ?", messageID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message marked as read",
	})
}
