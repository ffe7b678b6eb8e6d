package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// paperNumberAttempts bounds the retries when concurrent submissions race to
// the same sequential number.
const paperNumberAttempts = 3

// PaperService creates submissions under sequential ICMBNT numbers.
type PaperService struct {
	db *gorm.DB
}

func NewPaperService(db *gorm.DB) *PaperService {
	return &PaperService{db: db}
}

func nextPaperNumber(tx *gorm.DB, year int) (string, error) {
	var count int64
	prefix := fmt.Sprintf("ICMBNT-%d-%%", year)
	if err := tx.Model(&models.Paper{}).
		Where("paper_number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ICMBNT-%d-%04d", year, count+1), nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// CreateSubmission assigns the next sequential paper number and inserts the
// paper. Two concurrent submissions can compute the same candidate number;
// the unique column rejects the loser, which recounts and tries again.
func (s *PaperService) CreateSubmission(paper *models.Paper) error {
	year := time.Now().Year()
	if paper.SubmittedAt != nil {
		year = paper.SubmittedAt.Year()
	}

	var lastErr error
	for attempt := 0; attempt < paperNumberAttempts; attempt++ {
		number, err := nextPaperNumber(s.db, year)
		if err != nil {
			return err
		}
		paper.PaperNumber = number

		err = s.db.Create(paper).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		paper.PaperID = 0
		lastErr = err
	}
	return lastErr
}
