package controllers

import (
	"net/http"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns role-appropriate dashboard statistics.
func GetDashboardStats(c *gin.Context) {
	userID, userExists := getCurrentUserID(c)
	roleID, roleExists := getCurrentRoleID(c)
	if !userExists || !roleExists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication context missing",
		})
		return
	}

	var stats map[string]interface{}
	switch roleID {
	case models.RoleAdmin, models.RoleEditor:
		stats = getEditorialDashboard()
	case models.RoleReviewer:
		stats = getReviewerDashboard(userID)
	default:
		stats = getAuthorDashboard(userID)
	}

	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

func getEditorialDashboard() map[string]interface{} {
	stats := make(map[string]interface{})

	type statusCount struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	var byStatus []statusCount
	config.DB.Model(&models.Paper{}).
		Select("status, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&byStatus)

	papers := make(map[string]int64, len(byStatus))
	var total int64
	for _, row := range byStatus {
		papers[row.Status] = row.Count
		total += row.Count
	}
	stats["papers_by_status"] = papers
	stats["total_papers"] = total

	var pendingPayments int64
	config.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).
		Count(&pendingPayments)
	stats["pending_payments"] = pendingPayments

	var registrations int64
	config.DB.Model(&models.Registration{}).Count(&registrations)
	stats["total_registrations"] = registrations

	var overdueAssignments int64
	config.DB.Model(&models.ReviewAssignment{}).
		Where("status IN ? AND deadline < ?",
			[]string{models.AssignmentPending, models.AssignmentAccepted}, time.Now()).
		Count(&overdueAssignments)
	stats["overdue_assignments"] = overdueAssignments

	return stats
}

func getReviewerDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	var pending, submitted int64
	config.DB.Model(&models.ReviewAssignment{}).
		Where("reviewer_id = ? AND status IN ?", userID,
			[]string{models.AssignmentPending, models.AssignmentAccepted}).
		Count(&pending)
	config.DB.Model(&models.ReviewAssignment{}).
		Where("reviewer_id = ? AND status = ?", userID, models.AssignmentSubmitted).
		Count(&submitted)

	stats["pending_reviews"] = pending
	stats["submitted_reviews"] = submitted
	return stats
}

func getAuthorDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	type statusCount struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	var byStatus []statusCount
	config.DB.Model(&models.Paper{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ? AND delete_at IS NULL", userID).
		Group("status").
		Scan(&byStatus)

	papers := make(map[string]int64, len(byStatus))
	var total int64
	for _, row := range byStatus {
		papers[row.Status] = row.Count
		total += row.Count
	}
	stats["my_papers_by_status"] = papers
	stats["my_papers"] = total

	var pendingPayments int64
	config.DB.Model(&models.Payment{}).
		Where("user_id = ? AND status = ?", userID, models.PaymentPending).
		Count(&pendingPayments)
	stats["pending_payments"] = pendingPayments

	return stats
}
