package models

import "time"

// Revision represents an author-submitted corrected version of a paper after a
// "Revision Required" decision. The number of revisions determines the current
// review round (round = revision count + 1).
type Revision struct {
	RevisionID        int       `gorm:"primaryKey;column:revision_id" json:"revision_id"`
	PaperID           int       `gorm:"column:paper_id" json:"paper_id"`
	RevisionNumber    int       `gorm:"column:revision_number" json:"revision_number"`
	HighlightedFileID *int      `gorm:"column:highlighted_file_id" json:"highlighted_file_id,omitempty"`
	ResponseFileID    *int      `gorm:"column:response_file_id" json:"response_file_id,omitempty"`
	CreateAt          time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	HighlightedFile *FileUpload `gorm:"foreignKey:HighlightedFileID" json:"highlighted_file,omitempty"`
	ResponseFile    *FileUpload `gorm:"foreignKey:ResponseFileID" json:"response_file,omitempty"`
}

func (Revision) TableName() string {
	return "revisions"
}
