package models

import "time"

// Keynote represents a keynote speaker shown on the public conference pages.
type Keynote struct {
	KeynoteID    int        `gorm:"primaryKey;column:keynote_id" json:"keynote_id"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Affiliation  string     `gorm:"column:affiliation" json:"affiliation"`
	Bio          string     `gorm:"column:bio" json:"bio"`
	TalkTitle    string     `gorm:"column:talk_title" json:"talk_title"`
	PhotoFileID  *int       `gorm:"column:photo_file_id" json:"photo_file_id,omitempty"`
	DisplayOrder int        `gorm:"column:display_order" json:"display_order"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Photo *FileUpload `gorm:"foreignKey:PhotoFileID" json:"photo,omitempty"`
}

func (Keynote) TableName() string {
	return "keynotes"
}
