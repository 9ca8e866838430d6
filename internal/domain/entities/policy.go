package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PolicyStatus represents the lifecycle status of a policy
type PolicyStatus string

const (
	PolicyStatusActive   PolicyStatus = "active"
	PolicyStatusInactive PolicyStatus = "inactive"
)

// Premium frequency values carried as free text; only the exact value
// "Monthly" participates in dashboard premium totals.
const PremiumFrequencyMonthly = "Monthly"

// Policy represents one insurance policy owned by exactly one user.
// Documents holds relative file paths in upload order.
type Policy struct {
	ID               uuid.UUID    `json:"id"`
	OwnerID          uuid.UUID    `json:"userId"`
	PolicyName       string       `json:"policyName"`
	PolicyNumber     string       `json:"policyNumber"`
	InsuranceCompany string       `json:"insuranceCompany"`
	PolicyType       string       `json:"policyType,omitempty"`
	PremiumAmount    float64      `json:"premiumAmount"`
	PremiumFrequency string       `json:"premiumFrequency,omitempty"`
	CoverageAmount   float64      `json:"coverageAmount"`
	Status           PolicyStatus `json:"status"`
	StartDate        null.Time    `json:"startDate,omitempty"`
	EndDate          null.Time    `json:"endDate,omitempty"`
	Notes            null.String  `json:"notes,omitempty"`
	Documents        []string     `json:"documents"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// CreatePolicyInput represents input for creating a policy. Document files
// travel separately as multipart uploads.
type CreatePolicyInput struct {
	PolicyName       string  `form:"policyName"`
	PolicyNumber     string  `form:"policyNumber"`
	InsuranceCompany string  `form:"insuranceCompany"`
	PolicyType       string  `form:"policyType"`
	PremiumAmount    float64 `form:"premiumAmount"`
	PremiumFrequency string  `form:"premiumFrequency"`
	CoverageAmount   float64 `form:"coverageAmount"`
	Status           string  `form:"status"`
	StartDate        string  `form:"startDate"`
	EndDate          string  `form:"endDate"`
	Notes            string  `form:"notes"`
}

// DashboardStats holds derived summary statistics over a user's policy set.
// Never persisted; recomputed on every request.
type DashboardStats struct {
	ActivePolicyCount   int       `json:"activePolicies"`
	TotalCoverage       float64   `json:"totalCoverage"`
	MonthlyPremiumTotal float64   `json:"monthlyPremiums"`
	ExpiringSoon        []*Policy `json:"expiringSoon"`
}
