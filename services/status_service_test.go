package services

import (
	"errors"
	"testing"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionGraph(t *testing.T) {
	tests := []struct {
		name string
		from models.PaperStatus
		to   models.PaperStatus
		want bool
	}{
		{"submitted to editor assigned", models.StatusSubmitted, models.StatusEditorAssigned, true},
		{"submitted straight to under review", models.StatusSubmitted, models.StatusUnderReview, true},
		{"editor assigned to under review", models.StatusEditorAssigned, models.StatusUnderReview, true},
		{"under review to review received", models.StatusUnderReview, models.StatusReviewReceived, true},
		{"review received to revision required", models.StatusReviewReceived, models.StatusRevisionRequired, true},
		{"review received to accepted", models.StatusReviewReceived, models.StatusAccepted, true},
		{"revision required to revised submitted", models.StatusRevisionRequired, models.StatusRevisedSubmitted, true},
		{"revised submitted back to under review", models.StatusRevisedSubmitted, models.StatusUnderReview, true},
		{"revised submitted to accepted", models.StatusRevisedSubmitted, models.StatusAccepted, true},
		{"desk reject from submitted", models.StatusSubmitted, models.StatusRejected, true},
		{"reject during review", models.StatusUnderReview, models.StatusRejected, true},
		{"no skipping to accepted from submitted", models.StatusSubmitted, models.StatusAccepted, false},
		{"no accept straight from under review", models.StatusUnderReview, models.StatusAccepted, false},
		{"no backwards edge from review received", models.StatusReviewReceived, models.StatusSubmitted, false},
		{"no revision before reviews arrive", models.StatusUnderReview, models.StatusRevisionRequired, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	for from := range paperTransitions {
		if !from.Terminal() {
			continue
		}
		for to := range paperTransitions {
			if from == to {
				continue
			}
			assert.Falsef(t, CanTransition(from, to), "terminal status %s must not reach %s", from, to)
		}
	}
}

func TestEveryNonTerminalStatusCanReachRejected(t *testing.T) {
	for from := range paperTransitions {
		if from.Terminal() {
			continue
		}
		assert.Truef(t, CanTransition(from, models.StatusRejected), "%s must allow rejection", from)
	}
}

func TestTransitionPaperTerminalConflict(t *testing.T) {
	paper := &models.Paper{PaperID: 9, PaperNumber: "ICMBNT-2026-0009", Status: models.StatusAccepted}

	err := TransitionPaper(nil, paper, models.StatusUnderReview, 1, "")
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Contains(t, err.Error(), "can no longer change")
	assert.Equal(t, models.StatusAccepted, paper.Status)
}

func TestTransitionPaperInvalidEdgeConflict(t *testing.T) {
	paper := &models.Paper{PaperID: 4, PaperNumber: "ICMBNT-2026-0004", Status: models.StatusSubmitted}

	err := TransitionPaper(nil, paper, models.StatusAccepted, 1, "")
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, models.StatusSubmitted, paper.Status)
}

func TestTransitionPaperNoopWhenAlreadyThere(t *testing.T) {
	paper := &models.Paper{PaperID: 3, Status: models.StatusUnderReview}
	require.NoError(t, TransitionPaper(nil, paper, models.StatusUnderReview, 1, ""))
}
