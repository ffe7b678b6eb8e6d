package services

import (
	"fmt"
	"strings"
	"time"

	"conference-review-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// registrationFees maps category -> currency -> fee amount.
var registrationFees = map[string]map[string]float64{
	models.RegistrationStudent: {
		"INR": 6000, "USD": 120, "EUR": 110, "GBP": 95,
	},
	models.RegistrationAcademic: {
		"INR": 9000, "USD": 180, "EUR": 165, "GBP": 145,
	},
	models.RegistrationIndustry: {
		"INR": 12000, "USD": 240, "EUR": 220, "GBP": 190,
	},
	models.RegistrationListener: {
		"INR": 3000, "USD": 60, "EUR": 55, "GBP": 48,
	},
}

// ResolveFee returns the registration fee for a category/currency pair.
func ResolveFee(category, currency string) (float64, error) {
	byCurrency, ok := registrationFees[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return 0, newValidationError("invalid registration category %q", category)
	}
	amount, ok := byCurrency[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return 0, newValidationError("currency %q is not supported", currency)
	}
	return amount, nil
}

// FeeTable returns the full fee table for the public registration form.
func FeeTable() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(registrationFees))
	for category, byCurrency := range registrationFees {
		row := make(map[string]float64, len(byCurrency))
		for currency, amount := range byCurrency {
			row[currency] = amount
		}
		out[category] = row
	}
	return out
}

// RegistrationService records conference registrations from the public form.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// RegistrationInput carries the public registration form fields.
type RegistrationInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Country     string `json:"country"`
	Category    string `json:"category"`
	Currency    string `json:"currency"`
	PaperID     *int   `json:"paper_id,omitempty"`
	UserID      *int   `json:"-"`
}

// Register validates the form, resolves the fee, and stores the registration
// under a generated registration number.
func (s *RegistrationService) Register(input RegistrationInput) (*models.Registration, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, newValidationError("full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, newValidationError("email is required")
	}
	if strings.TrimSpace(input.Affiliation) == "" {
		return nil, newValidationError("affiliation is required")
	}
	if strings.TrimSpace(input.Country) == "" {
		return nil, newValidationError("country is required")
	}

	amount, err := ResolveFee(input.Category, input.Currency)
	if err != nil {
		return nil, err
	}

	if input.PaperID != nil {
		if _, err := loadPaper(s.db, *input.PaperID); err != nil {
			return nil, err
		}
	}

	registration := models.Registration{
		RegistrationNumber: fmt.Sprintf("REG-%s", strings.ToUpper(uuid.New().String()[:8])),
		UserID:             input.UserID,
		FullName:           strings.TrimSpace(input.FullName),
		Email:              strings.TrimSpace(input.Email),
		Affiliation:        strings.TrimSpace(input.Affiliation),
		Country:            strings.TrimSpace(input.Country),
		Category:           strings.ToLower(strings.TrimSpace(input.Category)),
		Currency:           strings.ToUpper(strings.TrimSpace(input.Currency)),
		Amount:             amount,
		PaperID:            input.PaperID,
		CreateAt:           time.Now(),
	}

	if err := s.db.Create(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}
