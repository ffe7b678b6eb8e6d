package services

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'ICMBNT-2026-0005' for key 'papers.paper_number'")))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
}

func TestCreateSubmissionAssignsSequentialNumber(t *testing.T) {
	year := time.Now().Year()
	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .papers."),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(4)}},
		},
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .papers.")},
	})
	defer cleanup()

	paper := models.Paper{Title: "A Study", UserID: 3, Status: models.StatusSubmitted}
	require.NoError(t, NewPaperService(db).CreateSubmission(&paper))

	assert.Equal(t, fmt.Sprintf("ICMBNT-%d-0005", year), paper.PaperNumber)
	assert.NoError(t, state.verifyComplete())
}

func TestCreateSubmissionRetriesOnDuplicateNumber(t *testing.T) {
	year := time.Now().Year()
	dupErr := fmt.Errorf("Error 1062 (23000): Duplicate entry 'ICMBNT-%d-0005' for key 'papers.paper_number'", year)

	db, state, cleanup := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .papers."),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(4)}},
		},
		// A concurrent submission took 0005 between the count and the insert.
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .papers."), err: dupErr},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .papers."),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(5)}},
		},
		{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .papers.")},
	})
	defer cleanup()

	paper := models.Paper{Title: "A Study", UserID: 3, Status: models.StatusSubmitted}
	require.NoError(t, NewPaperService(db).CreateSubmission(&paper))

	assert.Equal(t, fmt.Sprintf("ICMBNT-%d-0006", year), paper.PaperNumber)
	assert.NoError(t, state.verifyComplete())
}

func TestCreateSubmissionGivesUpAfterRepeatedDuplicates(t *testing.T) {
	dupErr := errors.New("Error 1062 (23000): Duplicate entry for key 'papers.paper_number'")

	var steps []*queryStep
	for i := 0; i < paperNumberAttempts; i++ {
		steps = append(steps,
			&queryStep{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM .papers."),
				columns: []string{"count(*)"},
				rows:    [][]driver.Value{{int64(4)}},
			},
			&queryStep{kind: kindExec, pattern: regexp.MustCompile("INSERT INTO .papers."), err: dupErr},
		)
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	paper := models.Paper{Title: "A Study", UserID: 3, Status: models.StatusSubmitted}
	err := NewPaperService(db).CreateSubmission(&paper)

	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
	assert.NoError(t, state.verifyComplete())
}
