package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetEditorPapers lists papers for the editor dashboard with status/category
// filters and review progress per paper.
func GetEditorPapers(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")

	var papers []models.Paper
	query := config.DB.Preload("User").
		Preload("Editor").
		Preload("File").
		Preload("Assignments.Reviewer").
		Preload("Revisions").
		Where("delete_at IS NULL")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("submitted_at DESC").Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	type paperWithProgress struct {
		models.Paper
		ReviewsSubmitted int `json:"reviews_submitted"`
		ReviewsExpected  int `json:"reviews_expected"`
	}

	out := make([]paperWithProgress, 0, len(papers))
	for i := range papers {
		submitted, total := services.ReviewProgress(papers[i].Assignments)
		out = append(out, paperWithProgress{
			Paper:            papers[i],
			ReviewsSubmitted: submitted,
			ReviewsExpected:  total,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"papers":  out,
		"total":   len(out),
	})
}

// ClaimPaper attaches the calling editor to a submitted paper.
func ClaimPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	editorID, _ := getCurrentUserID(c)

	var paper models.Paper
	if err := config.DB.Where("paper_id = ? AND delete_at IS NULL", paperID).
		First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	if paper.Status != models.StatusSubmitted {
		c.JSON(http.StatusConflict, gin.H{"error": "Paper already has an editor"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Paper{}).
			Where("paper_id = ?", paperID).
			Updates(map[string]interface{}{
				"editor_id": editorID,
				"update_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return services.TransitionPaper(tx, &paper, models.StatusEditorAssigned, editorID, "editor assigned")
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Paper claimed",
		"paper":   paper,
	})
}

// AssignReviewers assigns a set of reviewers with a shared deadline.
func AssignReviewers(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	editorID, _ := getCurrentUserID(c)

	var req struct {
		ReviewerIDs []int  `json:"reviewer_ids"`
		Deadline    string `json:"deadline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deadline must be YYYY-MM-DD"})
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignments, err := svc.AssignReviewers(paperID, req.ReviewerIDs, deadline, editorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Reviewers assigned",
		"assignments": assignments,
	})
}

// RemoveReviewer drops a reviewer from a paper together with their reviews.
func RemoveReviewer(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	reviewerID, err := strconv.Atoi(c.Param("reviewer_id"))
	if err != nil || reviewerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID"})
		return
	}

	svc := services.NewAssignmentService(config.DB)
	if err := svc.RemoveReviewer(paperID, reviewerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reviewer removed",
	})
}

// GetPaperReviews returns every review of a paper grouped by round.
func GetPaperReviews(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").
		Where("paper_id = ?", paperID).
		Order("round, reviewer_id").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	byRound := make(map[int][]models.Review)
	for _, review := range reviews {
		byRound[review.Round] = append(byRound[review.Round], review)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": byRound,
		"total":   len(reviews),
	})
}

// RequestRevision asks the author for a revision once all reviews are in.
func RequestRevision(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	editorID, _ := getCurrentUserID(c)

	var req struct {
		Message  string `json:"message" binding:"required"`
		Deadline string `json:"deadline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deadline must be YYYY-MM-DD"})
		return
	}

	svc := services.NewDecisionService(config.DB)
	paper, err := svc.RequestRevision(paperID, req.Message, deadline, editorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Revision requested",
		"paper":   paper,
	})
}

// AcceptPaper applies the terminal accept decision.
func AcceptPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	editorID, _ := getCurrentUserID(c)

	svc := services.NewDecisionService(config.DB)
	paper, err := svc.AcceptPaper(paperID, editorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Paper accepted",
		"paper":   paper,
	})
}

// RejectPaper applies the terminal reject decision.
func RejectPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}
	editorID, _ := getCurrentUserID(c)

	var req struct {
		Reason   string `json:"reason" binding:"required"`
		Comments string `json:"comments" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewDecisionService(config.DB)
	paper, err := svc.RejectPaper(paperID, req.Reason, req.Comments, editorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Paper rejected",
		"paper":   paper,
	})
}
