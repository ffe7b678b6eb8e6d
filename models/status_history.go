package models

import "time"

// PaperStatusHistory tracks historical status changes for papers.
type PaperStatusHistory struct {
	HistoryID int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	PaperID   int       `gorm:"column:paper_id" json:"paper_id"`
	OldStatus *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy int       `gorm:"column:changed_by" json:"changed_by"`
	Reason    *string   `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for PaperStatusHistory.
func (PaperStatusHistory) TableName() string {
	return "paper_status_history"
}
