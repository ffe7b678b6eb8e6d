package controllers

import (
	"net/http"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetRegistrationFees returns the category/currency fee table for the public
// registration form.
func GetRegistrationFees(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"fees":    services.FeeTable(),
	})
}

// CreateRegistration records a conference registration. The endpoint is
// public; a logged-in caller gets the registration attached to their account.
func CreateRegistration(c *gin.Context) {
	var input services.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if userID, ok := getCurrentUserID(c); ok {
		input.UserID = &userID
	}

	svc := services.NewRegistrationService(config.DB)
	registration, err := svc.Register(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Registration recorded",
		"registration": registration,
	})
}

// ListRegistrations returns registrations for the admin dashboard.
func ListRegistrations(c *gin.Context) {
	category := c.Query("category")
	currency := c.Query("currency")

	var registrations []models.Registration
	query := config.DB.Preload("User").Preload("Paper")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if currency != "" {
		query = query.Where("currency = ?", currency)
	}

	if err := query.Order("create_at DESC").Find(&registrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"registrations": registrations,
		"total":         len(registrations),
	})
}
