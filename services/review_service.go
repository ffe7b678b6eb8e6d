package services

import (
	"context"
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// minCommentLength mirrors the submission form's rule: both comment fields
// must carry at least this many characters.
const minCommentLength = 20

// ReviewPayload carries the fields of a review submission.
type ReviewPayload struct {
	Recommendation   string `json:"recommendation"`
	OverallRating    int    `json:"overall_rating"`
	NoveltyRating    int    `json:"novelty_rating"`
	QualityRating    int    `json:"quality_rating"`
	ClarityRating    int    `json:"clarity_rating"`
	Comments         string `json:"comments"`
	CommentsToEditor string `json:"comments_to_editor"`
}

var recommendations = map[string]bool{
	models.RecommendAccept:            true,
	models.RecommendConditionalAccept: true,
	models.RecommendMinorRevision:     true,
	models.RecommendMajorRevision:     true,
	models.RecommendReject:            true,
}

// ValidateReviewPayload checks recommendation, rating ranges, and comment
// lengths. Returns ValidationError on the first violation.
func ValidateReviewPayload(payload ReviewPayload) error {
	if !recommendations[payload.Recommendation] {
		return newValidationError("invalid recommendation %q", payload.Recommendation)
	}
	ratings := map[string]int{
		"overall": payload.OverallRating,
		"novelty": payload.NoveltyRating,
		"quality": payload.QualityRating,
		"clarity": payload.ClarityRating,
	}
	for name, value := range ratings {
		if value < 1 || value > 5 {
			return newValidationError("%s rating must be between 1 and 5", name)
		}
	}
	if len(strings.TrimSpace(payload.Comments)) < minCommentLength {
		return newValidationError("comments must be at least %d characters", minCommentLength)
	}
	if len(strings.TrimSpace(payload.CommentsToEditor)) < minCommentLength {
		return newValidationError("comments to editor must be at least %d characters", minCommentLength)
	}
	return nil
}

// ReviewService handles reviewer-side submissions and author revisions.
type ReviewService struct {
	db       *gorm.DB
	rounds   *RoundService
	notifier *NotificationService
}

func NewReviewService(db *gorm.DB, rounds *RoundService) *ReviewService {
	return &ReviewService{db: db, rounds: rounds, notifier: NewNotificationService(db)}
}

// SubmitReview upserts the review for (paper, reviewer, round), marks the
// assignment submitted, and moves the paper to Review Received once every
// active assignment for the round has a submitted review. Resubmission
// overwrites the stored review.
func (s *ReviewService) SubmitReview(ctx context.Context, paperID, reviewerID, round int, payload ReviewPayload) (*models.Review, error) {
	if err := ValidateReviewPayload(payload); err != nil {
		return nil, err
	}

	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status.Terminal() {
		return nil, newConflictError("paper %s is %s; reviews can no longer be submitted", paper.PaperNumber, paper.Status)
	}

	var assignment models.ReviewAssignment
	err = s.db.Where("paper_id = ? AND reviewer_id = ? AND round = ?", paperID, reviewerID, round).
		First(&assignment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "assignment", ID: paperID}
	}
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentRejected {
		return nil, newConflictError("assignment for paper %s was declined", paper.PaperNumber)
	}

	now := time.Now()
	var review models.Review
	err = s.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("paper_id = ? AND reviewer_id = ? AND round = ?", paperID, reviewerID, round).
			First(&review).Error
		switch findErr {
		case nil:
			// Overwrite. Concurrent sessions of the same reviewer are
			// last-write-wins; there is no version token on reviews.
			review.Recommendation = payload.Recommendation
			review.OverallRating = payload.OverallRating
			review.NoveltyRating = payload.NoveltyRating
			review.QualityRating = payload.QualityRating
			review.ClarityRating = payload.ClarityRating
			review.Comments = payload.Comments
			review.CommentsToEditor = payload.CommentsToEditor
			review.Status = models.ReviewSubmitted
			review.SubmittedAt = &now
			review.UpdateAt = now
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			review = models.Review{
				PaperID:          paperID,
				ReviewerID:       reviewerID,
				Round:            round,
				Recommendation:   payload.Recommendation,
				OverallRating:    payload.OverallRating,
				NoveltyRating:    payload.NoveltyRating,
				QualityRating:    payload.QualityRating,
				ClarityRating:    payload.ClarityRating,
				Comments:         payload.Comments,
				CommentsToEditor: payload.CommentsToEditor,
				Status:           models.ReviewSubmitted,
				SubmittedAt:      &now,
				CreateAt:         now,
				UpdateAt:         now,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		if err := tx.Model(&models.ReviewAssignment{}).
			Where("assignment_id = ?", assignment.AssignmentID).
			Updates(map[string]interface{}{
				"status":    models.AssignmentSubmitted,
				"update_at": now,
			}).Error; err != nil {
			return err
		}

		var assignments []models.ReviewAssignment
		if err := tx.Where("paper_id = ? AND round = ?", paperID, round).
			Find(&assignments).Error; err != nil {
			return err
		}
		if submitted, total := ReviewProgress(assignments); total > 0 && submitted == total {
			if CanTransition(paper.Status, models.StatusReviewReceived) {
				return TransitionPaper(tx, paper, models.StatusReviewReceived, reviewerID, "all reviews received")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rounds.InvalidateDraft(ctx, paperID, reviewerID, round)
	return &review, nil
}

// SubmitRevision records an author resubmission after a revision request and
// moves the paper to Revised Submitted. The handling editor is notified.
func (s *ReviewService) SubmitRevision(paperID, authorID int, highlightedFileID, responseFileID *int) (*models.Revision, error) {
	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.UserID != authorID {
		return nil, &NotFoundError{Entity: "paper", ID: paperID}
	}
	if paper.Status != models.StatusRevisionRequired {
		return nil, newConflictError("paper %s is %s; no revision was requested", paper.PaperNumber, paper.Status)
	}

	var count int64
	if err := s.db.Model(&models.Revision{}).
		Where("paper_id = ?", paperID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	revision := models.Revision{
		PaperID:           paperID,
		RevisionNumber:    int(count) + 1,
		HighlightedFileID: highlightedFileID,
		ResponseFileID:    responseFileID,
		CreateAt:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&revision).Error; err != nil {
			return err
		}
		return TransitionPaper(tx, paper, models.StatusRevisedSubmitted, authorID, "revision submitted")
	})
	if err != nil {
		return nil, err
	}

	if paper.EditorID != nil {
		var editor models.User
		if err := s.db.Where("user_id = ? AND delete_at IS NULL", *paper.EditorID).
			First(&editor).Error; err == nil {
			s.notifier.NotifyRevisionSubmitted(editor, *paper, revision.RevisionNumber)
		}
	}

	return &revision, nil
}
