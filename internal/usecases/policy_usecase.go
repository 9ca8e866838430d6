package usecases

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/domain/repositories"
	"policy-vault.backend/pkg/logger"
)

// DocumentUpload carries one uploaded file into the lifecycle manager
type DocumentUpload struct {
	Filename string
	Content  io.Reader
}

// PolicyUsecase owns the policy lifecycle: create with attachments, fetch,
// list, and delete with file cleanup.
type PolicyUsecase struct {
	policyRepo repositories.PolicyRepository
	fileStore  repositories.FileStore
	queue      repositories.TaskQueue
}

// NewPolicyUsecase creates a new policy usecase. queue may be nil when
// ingestion dispatch is disabled.
func NewPolicyUsecase(
	policyRepo repositories.PolicyRepository,
	fileStore repositories.FileStore,
	queue repositories.TaskQueue,
) *PolicyUsecase {
	return &PolicyUsecase{
		policyRepo: policyRepo,
		fileStore:  fileStore,
		queue:      queue,
	}
}

// Create validates input, stores uploaded documents, then persists the policy
// record referencing the stored paths in upload order. File writes and the
// record insert are not transactional; a failure between the two leaves
// orphaned files behind, which is accepted.
func (u *PolicyUsecase) Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePolicyInput, uploads []DocumentUpload) (*entities.Policy, error) {
	if err := validateRequiredFields(input); err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = string(entities.PolicyStatusActive)
	}

	startDate, err := parseDate(input.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(input.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	documents := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path, storeErr := u.fileStore.Store(ctx, upload.Filename, upload.Content)
		if storeErr != nil {
			return nil, domainerrors.StorageFailure("failed to store document", storeErr)
		}
		documents = append(documents, path)
	}

	policy := &entities.Policy{
		OwnerID:          ownerID,
		PolicyName:       strings.TrimSpace(input.PolicyName),
		PolicyNumber:     strings.TrimSpace(input.PolicyNumber),
		InsuranceCompany: strings.TrimSpace(input.InsuranceCompany),
		PolicyType:       input.PolicyType,
		PremiumAmount:    input.PremiumAmount,
		PremiumFrequency: input.PremiumFrequency,
		CoverageAmount:   input.CoverageAmount,
		Status:           entities.PolicyStatus(status),
		StartDate:        startDate,
		EndDate:          endDate,
		Notes:            null.NewString(input.Notes, input.Notes != ""),
		Documents:        documents,
	}

	if err := u.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	if u.queue != nil && len(documents) > 0 {
		task := &repositories.IngestTask{
			PolicyID:  policy.ID,
			OwnerID:   ownerID,
			Documents: documents,
		}
		if err := u.queue.Enqueue(ctx, task); err != nil {
			// Ingestion is advisory; the policy itself is already durable.
			logger.Warn(ctx, "Failed to enqueue ingestion task",
				zap.String("policy_id", policy.ID.String()),
				zap.Error(err),
			)
		}
	}

	return policy, nil
}

// List returns the owner's policies, most recent first
func (u *PolicyUsecase) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Policy, error) {
	return u.policyRepo.ListByOwner(ctx, ownerID)
}

// GetByID returns a policy if it exists and belongs to ownerID. A missing id
// yields ErrNotFound; an existing policy with a different owner yields
// ErrForbidden, so callers can map the two independently.
func (u *PolicyUsecase) GetByID(ctx context.Context, ownerID, policyID uuid.UUID) (*entities.Policy, error) {
	policy, err := u.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy.OwnerID != ownerID {
		return nil, domainerrors.ErrForbidden
	}
	return policy, nil
}

// Delete removes the policy's documents from storage, then the record.
// Missing files are skipped; any other storage failure aborts the delete
// before the record is touched.
func (u *PolicyUsecase) Delete(ctx context.Context, ownerID, policyID uuid.UUID) error {
	policy, err := u.GetByID(ctx, ownerID, policyID)
	if err != nil {
		return err
	}

	for _, path := range policy.Documents {
		if err := u.fileStore.Delete(ctx, path); err != nil {
			if errors.Is(err, repositories.ErrFileNotFound) {
				continue
			}
			return domainerrors.StorageFailure("failed to delete document", err)
		}
	}

	return u.policyRepo.Delete(ctx, policyID)
}

func validateRequiredFields(input *entities.CreatePolicyInput) error {
	switch {
	case strings.TrimSpace(input.PolicyName) == "":
		return domainerrors.BadRequest("policyName is required")
	case strings.TrimSpace(input.PolicyNumber) == "":
		return domainerrors.BadRequest("policyNumber is required")
	case strings.TrimSpace(input.InsuranceCompany) == "":
		return domainerrors.BadRequest("insuranceCompany is required")
	}
	return nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value, field string) (null.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return null.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return null.TimeFrom(ts), nil
		}
	}
	return null.Time{}, domainerrors.BadRequest(field + " must be an ISO date")
}
