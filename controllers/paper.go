package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"
	"conference-review-api/utils"

	"github.com/gin-gonic/gin"
)

// CreatePaper handles a new submission: metadata fields plus the manuscript
// PDF in one multipart request.
func CreatePaper(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	title := utils.SanitizeInput(c.PostForm("title"))
	abstract := utils.SanitizeInput(c.PostForm("abstract"))
	category := utils.SanitizeInput(c.PostForm("category"))
	if title == "" || abstract == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, abstract and category are required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manuscript PDF is required"})
		return
	}

	upload, err := storeUploadedFile(c, file, "paper", userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	paper := models.Paper{
		Title:       title,
		Abstract:    abstract,
		Category:    category,
		UserID:      userID,
		Status:      models.StatusSubmitted,
		FileID:      &upload.FileID,
		SubmittedAt: &now,
		CreateAt:    now,
		UpdateAt:    now,
	}

	if err := services.NewPaperService(config.DB).CreateSubmission(&paper); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Paper submitted successfully",
		"paper":   paper,
	})
}

// GetPapers returns the caller's submissions. Editors and admins see all
// papers; authors see their own.
func GetPapers(c *gin.Context) {
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	status := c.Query("status")
	category := c.Query("category")

	var papers []models.Paper
	query := config.DB.Preload("User").
		Preload("File").
		Preload("Assignments.Reviewer").
		Preload("Revisions").
		Where("delete_at IS NULL")

	if roleID != models.RoleEditor && roleID != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("create_at DESC").Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"papers":  papers,
		"total":   len(papers),
	})
}

// GetPaper returns a specific paper with assignments, revisions, and decision
// history. Authors can only read their own.
func GetPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	var paper models.Paper
	query := config.DB.Preload("User").
		Preload("Editor").
		Preload("File").
		Preload("Assignments.Reviewer").
		Preload("Revisions.HighlightedFile").
		Preload("Revisions.ResponseFile").
		Where("paper_id = ? AND delete_at IS NULL", paperID)

	if err := query.First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	if roleID == models.RoleAuthor && paper.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	var decisions []models.PaperDecision
	config.DB.Preload("Decider").
		Where("paper_id = ?", paperID).
		Order("decided_at DESC").
		Find(&decisions)

	var history []models.PaperStatusHistory
	config.DB.Where("paper_id = ?", paperID).
		Order("created_at DESC").
		Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"paper":     paper,
		"decisions": decisions,
		"history":   history,
	})
}

// SubmitRevision handles the author resubmission after a revision request:
// highlighted PDF plus optional response-to-reviewers PDF.
func SubmitRevision(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var highlightedID, responseID *int

	if file, err := c.FormFile("highlighted_file"); err == nil {
		upload, err := storeUploadedFile(c, file, "revision", userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		highlightedID = &upload.FileID
	}
	if file, err := c.FormFile("response_file"); err == nil {
		upload, err := storeUploadedFile(c, file, "response", userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		responseID = &upload.FileID
	}

	if highlightedID == nil && responseID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one revision file is required"})
		return
	}

	svc := services.NewReviewService(config.DB, services.NewRoundService(config.DB, config.Redis))
	revision, err := svc.SubmitRevision(paperID, userID, highlightedID, responseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Revision submitted successfully",
		"revision": revision,
	})
}

// DownloadPaperFile streams a stored file when the caller may read the paper.
func DownloadPaperFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	var file models.FileUpload
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).
		First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if !file.IsPublic && roleID == models.RoleAuthor && file.UploadedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	serveFileUpload(c, &file)
}
