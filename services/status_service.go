package services

import (
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// paperTransitions is the authoritative status graph. Rejection is reachable
// from every non-terminal state; Revised Submitted re-enters Under Review when
// the next review round is opened.
var paperTransitions = map[models.PaperStatus][]models.PaperStatus{
	models.StatusSubmitted:        {models.StatusEditorAssigned, models.StatusUnderReview, models.StatusRejected},
	models.StatusEditorAssigned:   {models.StatusUnderReview, models.StatusRejected},
	models.StatusUnderReview:      {models.StatusReviewReceived, models.StatusRejected},
	models.StatusReviewReceived:   {models.StatusRevisionRequired, models.StatusAccepted, models.StatusRejected},
	models.StatusRevisionRequired: {models.StatusRevisedSubmitted, models.StatusRejected},
	models.StatusRevisedSubmitted: {models.StatusUnderReview, models.StatusReviewReceived, models.StatusAccepted, models.StatusRejected},
	models.StatusAccepted:         {},
	models.StatusRejected:         {},
}

// CanTransition reports whether the status graph permits moving a paper from
// one status to another.
func CanTransition(from, to models.PaperStatus) bool {
	for _, next := range paperTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionPaper moves a paper to the target status inside the caller's
// transaction and appends a status-history row. It fails with ConflictError
// when the graph has no such edge, which also covers every write against a
// terminal paper.
func TransitionPaper(tx *gorm.DB, paper *models.Paper, to models.PaperStatus, changedBy int, reason string) error {
	if paper.Status == to {
		return nil
	}
	if !CanTransition(paper.Status, to) {
		if paper.Status.Terminal() {
			return newConflictError("paper %s is %s and can no longer change", paper.PaperNumber, paper.Status)
		}
		return newConflictError("cannot move paper %s from %s to %s", paper.PaperNumber, paper.Status, to)
	}

	now := time.Now()
	if err := tx.Model(&models.Paper{}).
		Where("paper_id = ?", paper.PaperID).
		Updates(map[string]interface{}{
			"status":    to,
			"update_at": now,
		}).Error; err != nil {
		return err
	}

	oldStatus := string(paper.Status)
	history := models.PaperStatusHistory{
		PaperID:   paper.PaperID,
		OldStatus: &oldStatus,
		NewStatus: string(to),
		ChangedBy: changedBy,
		CreatedAt: now,
	}
	if reason != "" {
		history.Reason = &reason
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}

	paper.Status = to
	paper.UpdateAt = now
	return nil
}

// loadPaper fetches a live paper row or returns NotFoundError.
func loadPaper(tx *gorm.DB, paperID int) (*models.Paper, error) {
	var paper models.Paper
	if err := tx.Preload("User").
		Where("paper_id = ? AND delete_at IS NULL", paperID).
		First(&paper).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "paper", ID: paperID}
		}
		return nil, err
	}
	return &paper, nil
}
