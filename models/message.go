package models

import "time"

// Message is a role-scoped message between a participant and the editorial
// office. RecipientID is nil for messages addressed to the office inbox.
type Message struct {
	MessageID   int        `gorm:"primaryKey;column:message_id" json:"message_id"`
	SenderID    int        `gorm:"column:sender_id" json:"sender_id"`
	RecipientID *int       `gorm:"column:recipient_id" json:"recipient_id,omitempty"`
	ParentID    *int       `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Subject     string     `gorm:"column:subject" json:"subject"`
	Body        string     `gorm:"column:body" json:"body"`
	IsRead      bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Sender    User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
