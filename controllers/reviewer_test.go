package controllers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"conference-review-api/config"
	"conference-review-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// cannedResult is one query's response for the read-only fake driver below.
type cannedResult struct {
	columns []string
	rows    [][]driver.Value
}

type cannedDriver struct {
	results *[]cannedResult
}

func (d *cannedDriver) Open(string) (driver.Conn, error) {
	return &cannedConn{results: d.results}, nil
}

type cannedConn struct {
	results *[]cannedResult
}

func (c *cannedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *cannedConn) Close() error { return nil }

func (c *cannedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("reads only")
}

func (c *cannedConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if len(*c.results) == 0 {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	result := (*c.results)[0]
	*c.results = (*c.results)[1:]
	return &cannedRows{columns: result.columns, rows: result.rows}, nil
}

type cannedRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *cannedRows) Columns() []string { return r.columns }

func (r *cannedRows) Close() error { return nil }

func (r *cannedRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

var cannedDriverSeq atomic.Int64

// withCannedDB points config.DB at a fake connection that serves the given
// query results in order.
func withCannedDB(t *testing.T, results []cannedResult) {
	t.Helper()
	name := fmt.Sprintf("canned_%d", cannedDriverSeq.Add(1))
	sql.Register(name, &cannedDriver{results: &results})

	sqlDB, err := sql.Open(name, "")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gormDB
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})
}

func reviewerRouter(userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("roleID", models.RoleReviewer)
	})
	router.GET("/reviewer/papers/:id/draft", GetReviewDraft)
	return router
}

func TestGetReviewDraftRefusesUnassignedReviewer(t *testing.T) {
	withCannedDB(t, []cannedResult{
		// Assignment count for (paper, reviewer): none.
		{columns: []string{"count(*)"}, rows: [][]driver.Value{{int64(0)}}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviewer/papers/7/draft", nil)
	reviewerRouter(11).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not assigned")
}

func TestGetReviewDraftForAssignedReviewer(t *testing.T) {
	withCannedDB(t, []cannedResult{
		{columns: []string{"count(*)"}, rows: [][]driver.Value{{int64(1)}}},
		// Revision count: none, so the current round is 1.
		{columns: []string{"count(*)"}, rows: [][]driver.Value{{int64(0)}}},
		// No stored review: an empty draft comes back.
		{columns: []string{"review_id", "paper_id", "reviewer_id", "round", "status"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviewer/papers/7/draft", nil)
	reviewerRouter(11).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"round":1`)
	assert.Contains(t, w.Body.String(), `"status":"draft"`)
}
