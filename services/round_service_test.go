package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"conference-review-api/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func intPtr(v int) *int { return &v }

func TestSelectReviewFileID(t *testing.T) {
	paper := &models.Paper{PaperID: 7, FileID: intPtr(100)}
	revisions := []models.Revision{
		{RevisionNumber: 1, HighlightedFileID: intPtr(201)},
		{RevisionNumber: 2, HighlightedFileID: intPtr(202)},
	}

	tests := []struct {
		name      string
		revisions []models.Revision
		round     int
		want      *int
	}{
		{"first round reads the original submission", revisions, 1, intPtr(100)},
		{"second round reads revision one", revisions, 2, intPtr(201)},
		{"third round reads revision two", revisions, 3, intPtr(202)},
		{"missing highlighted pdf falls back to the original", []models.Revision{{RevisionNumber: 1}}, 2, intPtr(100)},
		{"round beyond recorded revisions falls back to the original", revisions, 5, intPtr(100)},
		{"no revisions yet", nil, 2, intPtr(100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectReviewFileID(paper, tt.revisions, tt.round)
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}

	t.Run("paper without a file", func(t *testing.T) {
		assert.Nil(t, SelectReviewFileID(&models.Paper{PaperID: 8}, nil, 1))
	})
}

func TestCurrentRound(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .revisions."),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(2)}},
		},
	})
	defer cleanup()

	round, err := NewRoundService(db, nil).CurrentRound(7)
	require.NoError(t, err)
	assert.Equal(t, 3, round)
	assert.NoError(t, state.verifyComplete())
}

func TestReviewDraftCachesEmptyDraft(t *testing.T) {
	cache, mr := newTestCache(t)
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .reviews. WHERE paper_id"),
			columns: []string{"review_id", "paper_id", "reviewer_id", "round", "status"},
		},
	})
	defer cleanup()

	svc := NewRoundService(db, cache)
	ctx := context.Background()

	draft, err := svc.ReviewDraft(ctx, 7, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewDraft, draft.Status)
	assert.Equal(t, 7, draft.PaperID)
	assert.Equal(t, 11, draft.ReviewerID)
	assert.True(t, mr.Exists("review_draft:7:1:11"))

	// Second load must come from the cache: the script has no steps left.
	again, err := svc.ReviewDraft(ctx, 7, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, draft.Status, again.Status)
	assert.NoError(t, state.verifyComplete())
}

func TestReviewDraftReturnsStoredReview(t *testing.T) {
	cache, _ := newTestCache(t)
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .reviews. WHERE paper_id"),
			columns: []string{"review_id", "paper_id", "reviewer_id", "round", "recommendation", "overall_rating", "comments", "status"},
			rows: [][]driver.Value{
				{int64(5), int64(7), int64(11), int64(1), models.RecommendMajorRevision, int64(2), "needs a complete rework of the experiments", models.ReviewDraft},
			},
		},
	})
	defer cleanup()

	svc := NewRoundService(db, cache)
	draft, err := svc.ReviewDraft(context.Background(), 7, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, draft.ReviewID)
	assert.Equal(t, models.RecommendMajorRevision, draft.Recommendation)
	assert.Equal(t, 2, draft.OverallRating)
	assert.NoError(t, state.verifyComplete())
}

func TestReviewDraftWorksWithoutCache(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .reviews. WHERE paper_id"),
			columns: []string{"review_id", "paper_id", "reviewer_id", "round", "status"},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .reviews. WHERE paper_id"),
			columns: []string{"review_id", "paper_id", "reviewer_id", "round", "status"},
		},
	})
	defer cleanup()

	svc := NewRoundService(db, nil)
	ctx := context.Background()

	_, err := svc.ReviewDraft(ctx, 7, 11, 1)
	require.NoError(t, err)
	// No cache: every load goes to the database.
	_, err = svc.ReviewDraft(ctx, 7, 11, 1)
	require.NoError(t, err)
	assert.NoError(t, state.verifyComplete())
}

func TestInvalidateDraft(t *testing.T) {
	cache, mr := newTestCache(t)
	svc := NewRoundService(nil, cache)
	ctx := context.Background()

	require.NoError(t, mr.Set("review_draft:7:1:11", `{"paper_id":7}`))
	svc.InvalidateDraft(ctx, 7, 11, 1)
	assert.False(t, mr.Exists("review_draft:7:1:11"))

	// Nil cache is a no-op rather than a panic.
	NewRoundService(nil, nil).InvalidateDraft(ctx, 7, 11, 1)
}
