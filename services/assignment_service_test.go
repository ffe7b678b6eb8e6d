package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignReviewersValidation(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewAssignmentService(db)
	deadline := time.Now().AddDate(0, 0, 21)

	tests := []struct {
		name        string
		reviewerIDs []int
		deadline    time.Time
		wantErr     string
	}{
		{"empty reviewer set", nil, deadline, "at least one reviewer"},
		{"zero deadline", []int{11, 12, 13}, time.Time{}, "deadline is required"},
		{"non-positive reviewer id", []int{11, 0}, deadline, "invalid reviewer id"},
		{"duplicate reviewer", []int{11, 12, 11}, deadline, "listed more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssignReviewers(7, tt.reviewerIDs, tt.deadline, 2)
			var validation *ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	// Validation failures must not reach the database.
	assert.NoError(t, state.verifyComplete())
}

func TestAssignReviewersUnknownReviewer(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .papers. WHERE paper_id"),
			columns: []string{"paper_id", "paper_number", "status", "user_id"},
			rows: [][]driver.Value{
				{int64(7), "ICMBNT-2026-0007", string(models.StatusEditorAssigned), int64(3)},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .users."),
			columns: []string{"user_id", "email"},
			rows: [][]driver.Value{
				{int64(3), "author@example.com"},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .users. WHERE user_id IN"),
			columns: []string{"user_id", "email", "role_id"},
			rows: [][]driver.Value{
				{int64(11), "reviewer@example.com", int64(models.RoleReviewer)},
			},
		},
	})
	defer cleanup()

	svc := NewAssignmentService(db)
	_, err := svc.AssignReviewers(7, []int{11, 99}, time.Now().AddDate(0, 0, 21), 2)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "reviewer", notFound.Entity)
	assert.Equal(t, 99, notFound.ID)
	assert.NoError(t, state.verifyComplete())
}

func TestAssignReviewersTerminalPaper(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .papers. WHERE paper_id"),
			columns: []string{"paper_id", "paper_number", "status", "user_id"},
			rows: [][]driver.Value{
				{int64(7), "ICMBNT-2026-0007", string(models.StatusAccepted), int64(3)},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .users."),
			columns: []string{"user_id", "email"},
			rows: [][]driver.Value{
				{int64(3), "author@example.com"},
			},
		},
	})
	defer cleanup()

	svc := NewAssignmentService(db)
	_, err := svc.AssignReviewers(7, []int{11}, time.Now().AddDate(0, 0, 21), 2)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.NoError(t, state.verifyComplete())
}

func TestAcceptAssignmentWithoutPendingRow(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .review_assignments. WHERE paper_id"),
			columns: []string{"assignment_id", "paper_id", "reviewer_id", "round", "status"},
		},
	})
	defer cleanup()

	svc := NewAssignmentService(db)
	_, err := svc.AcceptAssignment(7, 11)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "pending assignment", notFound.Entity)
	assert.NoError(t, state.verifyComplete())
}

func TestRemoveReviewerGuards(t *testing.T) {
	t.Run("terminal paper refuses removal", func(t *testing.T) {
		db, state, cleanup := newScriptedGormDB(t, []*queryStep{
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT .* FROM .papers. WHERE paper_id"),
				columns: []string{"paper_id", "paper_number", "status", "user_id"},
				rows: [][]driver.Value{
					{int64(7), "ICMBNT-2026-0007", string(models.StatusRejected), int64(3)},
				},
			},
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT .* FROM .users."),
				columns: []string{"user_id", "email"},
				rows: [][]driver.Value{
					{int64(3), "author@example.com"},
				},
			},
		})
		defer cleanup()

		err := NewAssignmentService(db).RemoveReviewer(7, 11)
		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.NoError(t, state.verifyComplete())
	})

	t.Run("reviewer was never assigned", func(t *testing.T) {
		db, state, cleanup := newScriptedGormDB(t, []*queryStep{
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT .* FROM .papers. WHERE paper_id"),
				columns: []string{"paper_id", "paper_number", "status", "user_id"},
				rows: [][]driver.Value{
					{int64(7), "ICMBNT-2026-0007", string(models.StatusUnderReview), int64(3)},
				},
			},
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT .* FROM .users."),
				columns: []string{"user_id", "email"},
				rows: [][]driver.Value{
					{int64(3), "author@example.com"},
				},
			},
			{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .review_assignments."),
				columns: []string{"count(*)"},
				rows:    [][]driver.Value{{int64(0)}},
			},
		})
		defer cleanup()

		err := NewAssignmentService(db).RemoveReviewer(7, 11)
		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.NoError(t, state.verifyComplete())
	})
}
