package services

import (
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// AssignmentService manages reviewer-to-paper assignments: creation with a
// deadline, reviewer acceptance, and removal with cascading review deletion.
type AssignmentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db, notifier: NewNotificationService(db)}
}

// AssignReviewers creates one pending assignment per reviewer for the paper's
// current round and moves the paper into review. Assignment emails are
// dispatched after commit and their failure does not roll anything back.
func (s *AssignmentService) AssignReviewers(paperID int, reviewerIDs []int, deadline time.Time, assignedBy int) ([]models.ReviewAssignment, error) {
	if len(reviewerIDs) == 0 {
		return nil, newValidationError("at least one reviewer is required")
	}
	if deadline.IsZero() {
		return nil, newValidationError("review deadline is required")
	}

	seen := make(map[int]bool, len(reviewerIDs))
	for _, id := range reviewerIDs {
		if id <= 0 {
			return nil, newValidationError("invalid reviewer id %d", id)
		}
		if seen[id] {
			return nil, newValidationError("reviewer %d listed more than once", id)
		}
		seen[id] = true
	}

	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status.Terminal() {
		return nil, newConflictError("paper %s is %s and can no longer be assigned", paper.PaperNumber, paper.Status)
	}

	var reviewers []models.User
	if err := s.db.Where("user_id IN ? AND role_id = ? AND delete_at IS NULL", reviewerIDs, models.RoleReviewer).
		Find(&reviewers).Error; err != nil {
		return nil, err
	}
	if len(reviewers) != len(reviewerIDs) {
		found := make(map[int]bool, len(reviewers))
		for _, r := range reviewers {
			found[r.UserID] = true
		}
		for _, id := range reviewerIDs {
			if !found[id] {
				return nil, &NotFoundError{Entity: "reviewer", ID: id}
			}
		}
	}

	round, err := s.rounds().CurrentRound(paperID)
	if err != nil {
		return nil, err
	}

	var existing []models.ReviewAssignment
	if err := s.db.Where("paper_id = ? AND round = ? AND reviewer_id IN ?", paperID, round, reviewerIDs).
		Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, newConflictError("reviewer %d is already assigned to paper %s for round %d",
			existing[0].ReviewerID, paper.PaperNumber, round)
	}

	now := time.Now()
	assignments := make([]models.ReviewAssignment, 0, len(reviewerIDs))
	for _, id := range reviewerIDs {
		assignments = append(assignments, models.ReviewAssignment{
			PaperID:    paperID,
			ReviewerID: id,
			Round:      round,
			Deadline:   deadline,
			Status:     models.AssignmentPending,
			AssignedBy: assignedBy,
			CreateAt:   now,
			UpdateAt:   now,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}
		if paper.Status != models.StatusUnderReview {
			return TransitionPaper(tx, paper, models.StatusUnderReview, assignedBy, "reviewers assigned")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, reviewer := range reviewers {
		s.notifier.NotifyAssignment(reviewer, *paper, round, deadline)
	}

	return assignments, nil
}

// AcceptAssignment transitions the reviewer's pending assignment to accepted.
func (s *AssignmentService) AcceptAssignment(paperID, reviewerID int) (*models.ReviewAssignment, error) {
	return s.resolveAssignment(paperID, reviewerID, models.AssignmentAccepted)
}

// DeclineAssignment transitions the reviewer's pending assignment to rejected.
func (s *AssignmentService) DeclineAssignment(paperID, reviewerID int) (*models.ReviewAssignment, error) {
	return s.resolveAssignment(paperID, reviewerID, models.AssignmentRejected)
}

func (s *AssignmentService) resolveAssignment(paperID, reviewerID int, target string) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	err := s.db.Where("paper_id = ? AND reviewer_id = ? AND status = ?",
		paperID, reviewerID, models.AssignmentPending).
		Order("round DESC").
		First(&assignment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "pending assignment", ID: paperID}
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"status":    target,
			"update_at": now,
		}).Error; err != nil {
		return nil, err
	}

	assignment.Status = target
	assignment.UpdateAt = now
	return &assignment, nil
}

// RemoveReviewer deletes the reviewer's assignments for the paper together
// with every review they wrote for it. Irreversible; refused once the paper
// reached a terminal status.
func (s *AssignmentService) RemoveReviewer(paperID, reviewerID int) error {
	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return err
	}
	if paper.Status.Terminal() {
		return newConflictError("paper %s is %s; reviewers can no longer be removed", paper.PaperNumber, paper.Status)
	}

	var count int64
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "assignment", ID: reviewerID}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
			Delete(&models.ReviewAssignment{}).Error
	})
}

func (s *AssignmentService) rounds() *RoundService {
	return NewRoundService(s.db, nil)
}
