package services

import (
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// MinReviewers is the number of submitted reviews required before a paper can
// be accepted or sent back for revision.
const MinReviewers = 3

// DecisionService applies editorial decisions over the paper status graph.
// All guards live here so terminal states are enforced at the boundary, not
// by UI hiding.
type DecisionService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	return &DecisionService{db: db, notifier: NewNotificationService(db)}
}

// ReviewProgress counts the current round's submitted reviews against the
// reviewers still expected to deliver one. Declined assignments do not count
// toward either side.
func ReviewProgress(assignments []models.ReviewAssignment) (submitted, total int) {
	for _, a := range assignments {
		if a.Status == models.AssignmentRejected {
			continue
		}
		total++
		if a.Status == models.AssignmentSubmitted {
			submitted++
		}
	}
	return submitted, total
}

// CheckReviewsComplete is the shared precondition for acceptance and revision
// requests: at least MinReviewers active assignments, every one submitted.
func CheckReviewsComplete(assignments []models.ReviewAssignment) error {
	submitted, total := ReviewProgress(assignments)
	required := total
	if required < MinReviewers {
		required = MinReviewers
	}
	if total < MinReviewers || submitted < total {
		return newReviewProgressError(submitted, required)
	}
	return nil
}

func (s *DecisionService) currentRoundAssignments(paperID int) ([]models.ReviewAssignment, error) {
	round, err := NewRoundService(s.db, nil).CurrentRound(paperID)
	if err != nil {
		return nil, err
	}
	var assignments []models.ReviewAssignment
	if err := s.db.Where("paper_id = ? AND round = ?", paperID, round).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// RequestRevision asks the author for a corrected version. Requires every
// current-round review submitted (and at least MinReviewers of them).
func (s *DecisionService) RequestRevision(paperID int, message string, deadline time.Time, decidedBy int) (*models.Paper, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, newValidationError("revision message is required")
	}
	if deadline.IsZero() {
		return nil, newValidationError("revision deadline is required")
	}

	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status.Terminal() {
		return nil, newConflictError("paper %s is %s and can no longer change", paper.PaperNumber, paper.Status)
	}

	assignments, err := s.currentRoundAssignments(paperID)
	if err != nil {
		return nil, err
	}
	if err := CheckReviewsComplete(assignments); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := TransitionPaper(tx, paper, models.StatusRevisionRequired, decidedBy, "revision requested"); err != nil {
			return err
		}
		if err := tx.Model(&models.Paper{}).
			Where("paper_id = ?", paper.PaperID).
			Updates(map[string]interface{}{
				"revision_note":     message,
				"revision_deadline": deadline,
			}).Error; err != nil {
			return err
		}
		decision := models.PaperDecision{
			PaperID:      paper.PaperID,
			DecisionType: models.DecisionRequestRevision,
			Comments:     &message,
			Deadline:     &deadline,
			DecidedBy:    decidedBy,
			DecidedAt:    now,
		}
		return tx.Create(&decision).Error
	})
	if err != nil {
		return nil, err
	}

	paper.RevisionNote = &message
	paper.RevisionDeadline = &deadline
	s.notifier.NotifyRevisionRequested(paper.User, *paper, message, deadline)
	return paper, nil
}

// AcceptPaper moves the paper to the terminal Accepted status. Allowed when
// every current-round review is submitted, or directly from Revised Submitted.
func (s *DecisionService) AcceptPaper(paperID, decidedBy int) (*models.Paper, error) {
	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status.Terminal() {
		return nil, newConflictError("paper %s is already %s", paper.PaperNumber, paper.Status)
	}

	if paper.Status != models.StatusRevisedSubmitted {
		assignments, err := s.currentRoundAssignments(paperID)
		if err != nil {
			return nil, err
		}
		if err := CheckReviewsComplete(assignments); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := TransitionPaper(tx, paper, models.StatusAccepted, decidedBy, "paper accepted"); err != nil {
			return err
		}
		decision := models.PaperDecision{
			PaperID:      paper.PaperID,
			DecisionType: models.DecisionAccept,
			DecidedBy:    decidedBy,
			DecidedAt:    now,
		}
		return tx.Create(&decision).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDecision(paper.User, *paper, models.DecisionAccept, "Congratulations, your paper has been accepted.")
	return paper, nil
}

var rejectionReasons = map[string]bool{
	models.RejectOutOfScope:          true,
	models.RejectInsufficientNovelty: true,
	models.RejectMethodologicalFlaws: true,
	models.RejectPlagiarism:          true,
	models.RejectOther:               true,
}

// RejectPaper moves the paper to the terminal Rejected status. Allowed from
// any non-terminal state.
func (s *DecisionService) RejectPaper(paperID int, reason, comments string, decidedBy int) (*models.Paper, error) {
	if !rejectionReasons[reason] {
		return nil, newValidationError("invalid rejection reason %q", reason)
	}
	comments = strings.TrimSpace(comments)
	if comments == "" {
		return nil, newValidationError("rejection comments are required")
	}

	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status.Terminal() {
		return nil, newConflictError("paper %s is already %s", paper.PaperNumber, paper.Status)
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := TransitionPaper(tx, paper, models.StatusRejected, decidedBy, reason); err != nil {
			return err
		}
		decision := models.PaperDecision{
			PaperID:      paper.PaperID,
			DecisionType: models.DecisionReject,
			Reason:       &reason,
			Comments:     &comments,
			DecidedBy:    decidedBy,
			DecidedAt:    now,
		}
		return tx.Create(&decision).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDecision(paper.User, *paper, models.DecisionReject, comments)
	return paper, nil
}
