package controllers

import (
	"net/http"
	"strconv"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetMyAssignments lists the reviewer's assignments, optionally filtered by
// assignment status.
func GetMyAssignments(c *gin.Context) {
	reviewerID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	status := c.Query("status")

	var assignments []models.ReviewAssignment
	query := config.DB.Preload("Paper.User").
		Preload("Paper.File").
		Where("reviewer_id = ?", reviewerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("deadline ASC").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// AcceptAssignment marks the reviewer's pending assignment accepted.
func AcceptAssignment(c *gin.Context) {
	resolveAssignment(c, true)
}

// DeclineAssignment marks the reviewer's pending assignment rejected.
func DeclineAssignment(c *gin.Context) {
	resolveAssignment(c, false)
}

func resolveAssignment(c *gin.Context, accept bool) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	reviewerID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	svc := services.NewAssignmentService(config.DB)
	var assignment *models.ReviewAssignment
	if accept {
		assignment, err = svc.AcceptAssignment(paperID, reviewerID)
	} else {
		assignment, err = svc.DeclineAssignment(paperID, reviewerID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Assignment accepted"
	if !accept {
		message = "Assignment declined"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"assignment": assignment,
	})
}

// GetReviewDraft returns the reviewer's draft (or stored review) for the
// paper's current round, together with the round number and the file to
// review. The draft lookup is served through the read-through cache.
func GetReviewDraft(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	reviewerID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if !reviewerAssigned(paperID, reviewerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not assigned to this paper"})
		return
	}

	rounds := services.NewRoundService(config.DB, config.Redis)
	round, err := rounds.CurrentRound(paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	draft, err := rounds.ReviewDraft(c.Request.Context(), paperID, reviewerID, round)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   round,
		"review":  draft,
	})
}

// GetReviewFile streams the PDF the reviewer should read for the paper's
// current round (original manuscript or the latest highlighted revision).
func GetReviewFile(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	reviewerID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if !reviewerAssigned(paperID, reviewerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not assigned to this paper"})
		return
	}

	rounds := services.NewRoundService(config.DB, config.Redis)
	round, err := rounds.CurrentRound(paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, err := rounds.ReviewFile(paperID, round)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	serveFileUpload(c, file)
}

// reviewerAssigned reports whether the reviewer has any assignment for the
// paper. Draft and file reads are refused without one.
func reviewerAssigned(paperID, reviewerID int) bool {
	var count int64
	if err := config.DB.Model(&models.ReviewAssignment{}).
		Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// SubmitReview upserts the reviewer's evaluation for the current round.
func SubmitReview(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	reviewerID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var payload services.ReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rounds := services.NewRoundService(config.DB, config.Redis)
	round, err := rounds.CurrentRound(paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	svc := services.NewReviewService(config.DB, rounds)
	review, err := svc.SubmitReview(c.Request.Context(), paperID, reviewerID, round, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review submitted successfully",
		"review":  review,
	})
}
