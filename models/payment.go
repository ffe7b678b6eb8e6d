package models

import "time"

// Payment verification statuses.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// Payment represents an offline payment proof uploaded by a participant and
// verified by an admin. Amount and currency are copied from the registration
// at upload time so later fee-table edits do not alter recorded payments.
type Payment struct {
	PaymentID      int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	UserID         int        `gorm:"column:user_id" json:"user_id"`
	RegistrationID *int       `gorm:"column:registration_id" json:"registration_id,omitempty"`
	PaperID        *int       `gorm:"column:paper_id" json:"paper_id,omitempty"`
	Amount         float64    `gorm:"column:amount" json:"amount"`
	Currency       string     `gorm:"column:currency" json:"currency"`
	ProofFileID    int        `gorm:"column:proof_file_id" json:"proof_file_id"`
	Status         string     `gorm:"column:status" json:"status"`
	VerifiedBy     *int       `gorm:"column:verified_by" json:"verified_by,omitempty"`
	VerifiedAt     *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	Note           *string    `gorm:"column:note" json:"note,omitempty"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       time.Time  `gorm:"column:update_at" json:"update_at"`

	// Relations
	User      User        `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	ProofFile *FileUpload `gorm:"foreignKey:ProofFileID" json:"proof_file,omitempty"`
	Verifier  *User       `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
