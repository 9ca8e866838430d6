package models

import (
	"time"

	"github.com/google/uuid"
)

// Policy persists one insurance policy. Documents is a JSON-encoded string
// array; order is upload order.
type Policy struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PolicyName       string    `gorm:"type:varchar(255);not null"`
	PolicyNumber     string    `gorm:"type:varchar(255);not null"`
	InsuranceCompany string    `gorm:"type:varchar(255);not null"`
	PolicyType       string    `gorm:"type:varchar(100)"`
	PremiumAmount    float64
	PremiumFrequency string `gorm:"type:varchar(50)"`
	CoverageAmount   float64
	Status           string `gorm:"type:varchar(50);not null;default:'active'"`
	StartDate        *time.Time
	EndDate          *time.Time
	Notes            string `gorm:"type:text"`
	Documents        string `gorm:"type:text;default:'[]'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
