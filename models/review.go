package models

import "time"

// ReviewAssignment statuses.
const (
	AssignmentPending   = "pending"
	AssignmentAccepted  = "accepted"
	AssignmentRejected  = "rejected"
	AssignmentSubmitted = "submitted"
)

// Recommendations accepted on review submission.
const (
	RecommendAccept            = "Accept"
	RecommendConditionalAccept = "Conditional Accept"
	RecommendMinorRevision     = "Minor Revision"
	RecommendMajorRevision     = "Major Revision"
	RecommendReject            = "Reject"
)

// Review statuses.
const (
	ReviewDraft     = "draft"
	ReviewSubmitted = "submitted"
)

// ReviewAssignment ties a reviewer to a paper for one review round.
// One row per (paper, reviewer, round).
type ReviewAssignment struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	PaperID      int       `gorm:"column:paper_id" json:"paper_id"`
	ReviewerID   int       `gorm:"column:reviewer_id" json:"reviewer_id"`
	Round        int       `gorm:"column:round" json:"round"`
	Deadline     time.Time `gorm:"column:deadline" json:"deadline"`
	Status       string    `gorm:"column:status" json:"status"`
	AssignedBy   int       `gorm:"column:assigned_by" json:"assigned_by"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Paper    *Paper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
	Reviewer *User  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// Review holds a reviewer's evaluation of a paper for one round. At most one
// row per (paper, reviewer, round); resubmission overwrites the existing row.
type Review struct {
	ReviewID         int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	PaperID          int        `gorm:"column:paper_id" json:"paper_id"`
	ReviewerID       int        `gorm:"column:reviewer_id" json:"reviewer_id"`
	Round            int        `gorm:"column:round" json:"round"`
	Recommendation   string     `gorm:"column:recommendation" json:"recommendation"`
	OverallRating    int        `gorm:"column:overall_rating" json:"overall_rating"`
	NoveltyRating    int        `gorm:"column:novelty_rating" json:"novelty_rating"`
	QualityRating    int        `gorm:"column:quality_rating" json:"quality_rating"`
	ClarityRating    int        `gorm:"column:clarity_rating" json:"clarity_rating"`
	Comments         string     `gorm:"column:comments" json:"comments"`
	CommentsToEditor string     `gorm:"column:comments_to_editor" json:"comments_to_editor"`
	Status           string     `gorm:"column:status" json:"status"`
	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         time.Time  `gorm:"column:update_at" json:"update_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
