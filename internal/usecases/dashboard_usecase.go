package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
	"policy-vault.backend/internal/domain/repositories"
)

// expiringSoonWindow is the horizon for the expiring-soon bucket.
const expiringSoonWindow = 7 * 24 * time.Hour

var timeNow = time.Now

// DashboardUsecase computes derived summary statistics over a user's policy
// set. Nothing is cached; every call recomputes from the full list, which is
// fine at per-user policy counts.
type DashboardUsecase struct {
	policyRepo repositories.PolicyRepository
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(policyRepo repositories.PolicyRepository) *DashboardUsecase {
	return &DashboardUsecase{policyRepo: policyRepo}
}

// Compute derives the dashboard stats for one owner.
//
// MonthlyPremiumTotal matches premiumFrequency "Monthly" exactly, case
// included. ExpiringSoon keeps every policy whose end date is at most seven
// days away, which also captures policies that already expired.
func (u *DashboardUsecase) Compute(ctx context.Context, ownerID uuid.UUID) (*entities.DashboardStats, error) {
	policies, err := u.policyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	stats := &entities.DashboardStats{
		ExpiringSoon: []*entities.Policy{},
	}

	for _, p := range policies {
		if p.Status == entities.PolicyStatusActive {
			stats.ActivePolicyCount++
		}

		stats.TotalCoverage += p.CoverageAmount

		if p.PremiumFrequency == entities.PremiumFrequencyMonthly {
			stats.MonthlyPremiumTotal += p.PremiumAmount
		}

		if p.EndDate.Valid && p.EndDate.Time.Sub(now) <= expiringSoonWindow {
			stats.ExpiringSoon = append(stats.ExpiringSoon, p)
		}
	}

	return stats, nil
}
