package models

import "time"

// PaperStatus is the closed set of lifecycle states for a paper. Transitions are
// validated centrally in services.CanTransition; handlers never write the status
// column directly.
type PaperStatus string

const (
	StatusSubmitted        PaperStatus = "Submitted"
	StatusEditorAssigned   PaperStatus = "Editor Assigned"
	StatusUnderReview      PaperStatus = "Under Review"
	StatusReviewReceived   PaperStatus = "Review Received"
	StatusRevisionRequired PaperStatus = "Revision Required"
	StatusRevisedSubmitted PaperStatus = "Revised Submitted"
	StatusAccepted         PaperStatus = "Accepted"
	StatusRejected         PaperStatus = "Rejected"
)

// Terminal reports whether the status permits no further mutation.
func (s PaperStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Paper represents the papers table. Papers are never deleted, only
// status-transitioned; delete_at exists for administrative soft removal of
// spam entries and is excluded from every workflow query.
type Paper struct {
	PaperID          int         `gorm:"primaryKey;column:paper_id" json:"paper_id"`
	PaperNumber      string      `gorm:"column:paper_number;unique" json:"paper_number"`
	Title            string      `gorm:"column:title" json:"title"`
	Abstract         string      `gorm:"column:abstract" json:"abstract"`
	Category         string      `gorm:"column:category" json:"category"`
	UserID           int         `gorm:"column:user_id" json:"user_id"`
	EditorID         *int        `gorm:"column:editor_id" json:"editor_id,omitempty"`
	Status           PaperStatus `gorm:"column:status" json:"status"`
	FileID           *int        `gorm:"column:file_id" json:"file_id,omitempty"`
	RevisionNote     *string     `gorm:"column:revision_note" json:"revision_note,omitempty"`
	RevisionDeadline *time.Time  `gorm:"column:revision_deadline" json:"revision_deadline,omitempty"`
	SubmittedAt      *time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	CreateAt         time.Time   `gorm:"column:create_at" json:"create_at"`
	UpdateAt         time.Time   `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time  `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User        User               `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Editor      *User              `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
	File        *FileUpload        `gorm:"foreignKey:FileID" json:"file,omitempty"`
	Assignments []ReviewAssignment `gorm:"foreignKey:PaperID" json:"assignments,omitempty"`
	Revisions   []Revision         `gorm:"foreignKey:PaperID" json:"revisions,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}

// Decision types stored in paper_decisions.
const (
	DecisionAccept          = "accept"
	DecisionReject          = "reject"
	DecisionRequestRevision = "request_revision"
)

// Rejection reasons accepted by the decision endpoints.
const (
	RejectOutOfScope          = "out_of_scope"
	RejectInsufficientNovelty = "insufficient_novelty"
	RejectMethodologicalFlaws = "methodological_flaws"
	RejectPlagiarism          = "plagiarism"
	RejectOther               = "other"
)

// PaperDecision records an editorial decision payload (acceptance record,
// rejection record, revision request) attached to a paper.
type PaperDecision struct {
	DecisionID   int        `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	PaperID      int        `gorm:"column:paper_id" json:"paper_id"`
	DecisionType string     `gorm:"column:decision_type" json:"decision_type"`
	Reason       *string    `gorm:"column:reason" json:"reason,omitempty"`
	Comments     *string    `gorm:"column:comments" json:"comments,omitempty"`
	Deadline     *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	DecidedBy    int        `gorm:"column:decided_by" json:"decided_by"`
	DecidedAt    time.Time  `gorm:"column:decided_at" json:"decided_at"`

	Decider *User `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

func (PaperDecision) TableName() string {
	return "paper_decisions"
}
