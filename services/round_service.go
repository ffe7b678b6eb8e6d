package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"conference-review-api/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const draftCacheTTL = 15 * time.Minute

// RoundService computes the current review round for a paper and serves
// review drafts through a read-through Redis cache keyed by
// (paper, round, reviewer). A nil cache client disables caching.
type RoundService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewRoundService(db *gorm.DB, cache *redis.Client) *RoundService {
	return &RoundService{db: db, cache: cache}
}

// CurrentRound returns 1 + the number of revisions recorded for the paper.
func (s *RoundService) CurrentRound(paperID int) (int, error) {
	var revisions int64
	if err := s.db.Model(&models.Revision{}).
		Where("paper_id = ?", paperID).
		Count(&revisions).Error; err != nil {
		return 0, fmt.Errorf("failed to count revisions for paper %d: %w", paperID, err)
	}
	return int(revisions) + 1, nil
}

// SelectReviewFileID picks the PDF a reviewer reads for the given round.
// Round 1 always reviews the original submission; round k reviews the
// highlighted PDF of revision k-1, falling back to the original when the
// highlighted PDF is absent. Revisions must be ordered by revision_number.
func SelectReviewFileID(paper *models.Paper, revisions []models.Revision, round int) *int {
	if round <= 1 {
		return paper.FileID
	}
	for _, rev := range revisions {
		if rev.RevisionNumber == round-1 {
			if rev.HighlightedFileID != nil {
				return rev.HighlightedFileID
			}
			break
		}
	}
	return paper.FileID
}

// ReviewFile resolves the file a reviewer should read for the given round.
func (s *RoundService) ReviewFile(paperID, round int) (*models.FileUpload, error) {
	paper, err := loadPaper(s.db, paperID)
	if err != nil {
		return nil, err
	}

	var revisions []models.Revision
	if err := s.db.Where("paper_id = ?", paperID).
		Order("revision_number").
		Find(&revisions).Error; err != nil {
		return nil, err
	}

	fileID := SelectReviewFileID(paper, revisions, round)
	if fileID == nil {
		return nil, &NotFoundError{Entity: "paper file", ID: paperID}
	}

	var file models.FileUpload
	if err := s.db.Where("file_id = ? AND delete_at IS NULL", *fileID).
		First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "file", ID: *fileID}
		}
		return nil, err
	}
	return &file, nil
}

func draftCacheKey(paperID, round, reviewerID int) string {
	return fmt.Sprintf("review_draft:%d:%d:%d", paperID, round, reviewerID)
}

// ReviewDraft returns the stored review for (paper, reviewer, round) when one
// exists, else an empty draft. Repeated loads for an already-resolved key are
// served from the cache without touching the database.
func (s *RoundService) ReviewDraft(ctx context.Context, paperID, reviewerID, round int) (*models.Review, error) {
	key := draftCacheKey(paperID, round, reviewerID)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var cached models.Review
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("Review draft cache read failed for %s: %v", key, err)
		}
	}

	var review models.Review
	err := s.db.Where("paper_id = ? AND reviewer_id = ? AND round = ?", paperID, reviewerID, round).
		First(&review).Error
	if err == gorm.ErrRecordNotFound {
		review = models.Review{
			PaperID:    paperID,
			ReviewerID: reviewerID,
			Round:      round,
			Status:     models.ReviewDraft,
		}
	} else if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(review); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, raw, draftCacheTTL).Err(); setErr != nil {
				log.Printf("Review draft cache write failed for %s: %v", key, setErr)
			}
		}
	}

	return &review, nil
}

// InvalidateDraft drops the cached draft after a submission overwrites it.
func (s *RoundService) InvalidateDraft(ctx context.Context, paperID, reviewerID, round int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, draftCacheKey(paperID, round, reviewerID)).Err(); err != nil {
		log.Printf("Review draft cache invalidation failed: %v", err)
	}
}
