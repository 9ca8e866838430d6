package repositories

import (
	"context"

	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
)

// PolicyRepository defines policy data operations. Ownership checks live in
// the usecase layer; GetByID returns whatever record carries the id so the
// caller can distinguish not-found from wrong-owner.
type PolicyRepository interface {
	Create(ctx context.Context, policy *entities.Policy) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Policy, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Policy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
