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

// UploadPaymentProof records a payment proof against a registration.
func UploadPaymentProof(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	registrationID, err := strconv.Atoi(c.PostForm("registration_id"))
	if err != nil || registrationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}

	var registration models.Registration
	if err := config.DB.Where("registration_id = ?", registrationID).
		First(&registration).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}
	if registration.UserID != nil && *registration.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Registration belongs to another account"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment proof file is required"})
		return
	}

	upload, err := storeUploadedFile(c, file, "payment_proof", userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	payment := models.Payment{
		UserID:         userID,
		RegistrationID: &registrationID,
		PaperID:        registration.PaperID,
		Amount:         registration.Amount,
		Currency:       registration.Currency,
		ProofFileID:    upload.FileID,
		Status:         models.PaymentPending,
		CreateAt:       now,
		UpdateAt:       now,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Payment proof uploaded, pending verification",
		"payment": payment,
	})
}

// GetMyPayments lists the caller's payments.
func GetMyPayments(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var payments []models.Payment
	if err := config.DB.Preload("ProofFile").
		Where("user_id = ?", userID).
		Order("create_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": payments,
		"total":    len(payments),
	})
}

// ListPayments returns payments for the admin verification queue.
func ListPayments(c *gin.Context) {
	status := c.Query("status")

	var payments []models.Payment
	query := config.DB.Preload("User").
		Preload("ProofFile").
		Preload("Verifier")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("create_at ASC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": payments,
		"total":    len(payments),
	})
}

// VerifyPayment marks a pending payment verified or rejected.
func VerifyPayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paymentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return
	}
	adminID, _ := getCurrentUserID(c)

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var target string
	switch req.Decision {
	case "verify":
		target = models.PaymentVerified
	case "reject":
		target = models.PaymentRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be either 'verify' or 'reject'"})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("payment_id = ?", paymentID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if payment.Status != models.PaymentPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment has already been processed"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      target,
		"verified_by": adminID,
		"verified_at": now,
		"update_at":   now,
	}
	if note := utils.SanitizeInput(req.Note); note != "" {
		updates["note"] = note
	}

	if err := config.DB.Model(&models.Payment{}).
		Where("payment_id = ?", paymentID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment " + target,
	})
}
