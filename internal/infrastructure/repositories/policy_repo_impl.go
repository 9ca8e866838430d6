package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/infrastructure/models"
)

// PolicyRepository implements policy data operations
type PolicyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// Create creates a new policy record
func (r *PolicyRepository) Create(ctx context.Context, policy *entities.Policy) error {
	if policy.ID == uuid.Nil {
		policy.ID = uuid.New()
	}

	docs, err := encodeDocuments(policy.Documents)
	if err != nil {
		return err
	}

	m := &models.Policy{
		ID:               policy.ID,
		OwnerID:          policy.OwnerID,
		PolicyName:       policy.PolicyName,
		PolicyNumber:     policy.PolicyNumber,
		InsuranceCompany: policy.InsuranceCompany,
		PolicyType:       policy.PolicyType,
		PremiumAmount:    policy.PremiumAmount,
		PremiumFrequency: policy.PremiumFrequency,
		CoverageAmount:   policy.CoverageAmount,
		Status:           string(policy.Status),
		StartDate:        policy.StartDate.Ptr(),
		EndDate:          policy.EndDate.Ptr(),
		Notes:            policy.Notes.String,
		Documents:        docs,
		CreatedAt:        policy.CreatedAt,
		UpdatedAt:        policy.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	policy.CreatedAt = m.CreatedAt
	policy.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a policy by ID regardless of owner
func (r *PolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Policy, error) {
	var m models.Policy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return policyToEntity(&m)
}

// ListByOwner lists an owner's policies, most recent first
func (r *PolicyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Policy, error) {
	var policyModels []models.Policy
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&policyModels).Error
	if err != nil {
		return nil, err
	}

	policies := make([]*entities.Policy, 0, len(policyModels))
	for i := range policyModels {
		p, err := policyToEntity(&policyModels[i])
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// Delete removes a policy record
func (r *PolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Policy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func encodeDocuments(documents []string) (string, error) {
	if documents == nil {
		documents = []string{}
	}
	raw, err := json.Marshal(documents)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func policyToEntity(m *models.Policy) (*entities.Policy, error) {
	var documents []string
	if m.Documents != "" {
		if err := json.Unmarshal([]byte(m.Documents), &documents); err != nil {
			return nil, err
		}
	}
	if documents == nil {
		documents = []string{}
	}

	return &entities.Policy{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		PolicyName:       m.PolicyName,
		PolicyNumber:     m.PolicyNumber,
		InsuranceCompany: m.InsuranceCompany,
		PolicyType:       m.PolicyType,
		PremiumAmount:    m.PremiumAmount,
		PremiumFrequency: m.PremiumFrequency,
		CoverageAmount:   m.CoverageAmount,
		Status:           entities.PolicyStatus(m.Status),
		StartDate:        null.TimeFromPtr(m.StartDate),
		EndDate:          null.TimeFromPtr(m.EndDate),
		Notes:            null.NewString(m.Notes, m.Notes != ""),
		Documents:        documents,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
