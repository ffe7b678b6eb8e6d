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

// ListUsers returns users filtered by role (admin).
func ListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Role").Where("delete_at IS NULL")

	if role := c.Query("role_id"); role != "" {
		query = query.Where("role_id = ?", role)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Order("user_lname, user_fname").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}

// ListReviewers returns active reviewers for the editor's assignment form.
func ListReviewers(c *gin.Context) {
	var reviewers []models.User
	query := config.DB.Where("role_id = ? AND is_active = ? AND delete_at IS NULL",
		models.RoleReviewer, true)

	if expertise := c.Query("expertise"); expertise != "" {
		query = query.Where("expertise LIKE ?", "%"+expertise+"%")
	}

	if err := query.Order("user_lname, user_fname").Find(&reviewers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}

// CreateUser provisions an account with an explicit role (admin).
func CreateUser(c *gin.Context) {
	var req struct {
		Prefix      string `json:"prefix"`
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		RoleID      int    `json:"role_id" binding:"required"`
		Affiliation string `json:"affiliation"`
		Expertise   string `json:"expertise"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RoleID < models.RoleAuthor || req.RoleID > models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := models.User{
		UserFname: utils.SanitizeInput(req.FirstName),
		UserLname: utils.SanitizeInput(req.LastName),
		Email:     req.Email,
		Password:  hashed,
		RoleID:    req.RoleID,
		IsActive:  true,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if req.Prefix != "" {
		prefix := utils.SanitizeInput(req.Prefix)
		user.Prefix = &prefix
	}
	if req.Affiliation != "" {
		affiliation := utils.SanitizeInput(req.Affiliation)
		user.Affiliation = &affiliation
	}
	if req.Expertise != "" {
		expertise := utils.SanitizeInput(req.Expertise)
		user.Expertise = &expertise
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateUserRole changes a user's role (admin).
func UpdateUserRole(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		RoleID int `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.RoleID < models.RoleAuthor || req.RoleID > models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Updates(map[string]interface{}{
			"role_id":   req.RoleID,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated",
	})
}

// SetUserActive activates or deactivates an account (admin).
func SetUserActive(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Updates(map[string]interface{}{
			"is_active": *req.IsActive,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated",
	})
}
