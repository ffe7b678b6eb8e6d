package models

import "time"

// Registration categories.
const (
	RegistrationStudent  = "student"
	RegistrationAcademic = "academic"
	RegistrationIndustry = "industry"
	RegistrationListener = "listener"
)

// Registration represents a conference registration entry. Fee amount is
// resolved from the category/currency fee table at creation time.
type Registration struct {
	RegistrationID     int       `gorm:"primaryKey;column:registration_id" json:"registration_id"`
	RegistrationNumber string    `gorm:"column:registration_number;unique" json:"registration_number"`
	UserID             *int      `gorm:"column:user_id" json:"user_id,omitempty"`
	FullName           string    `gorm:"column:full_name" json:"full_name"`
	Email              string    `gorm:"column:email" json:"email"`
	Affiliation        string    `gorm:"column:affiliation" json:"affiliation"`
	Country            string    `gorm:"column:country" json:"country"`
	Category           string    `gorm:"column:category" json:"category"`
	Currency           string    `gorm:"column:currency" json:"currency"`
	Amount             float64   `gorm:"column:amount" json:"amount"`
	PaperID            *int      `gorm:"column:paper_id" json:"paper_id,omitempty"`
	CreateAt           time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	User  *User  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Paper *Paper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}
