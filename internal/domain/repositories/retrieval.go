package repositories

import (
	"context"

	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
)

// RetrievalClient talks to the external policy retrieval service.
type RetrievalClient interface {
	Query(ctx context.Context, userID uuid.UUID, query string, topK int) (*entities.ChatAnswer, error)
	Ingest(ctx context.Context, policyID, userID uuid.UUID, documents []string) error
}

// IngestTask describes one policy whose documents should be pushed into the
// retrieval index.
type IngestTask struct {
	PolicyID  uuid.UUID `json:"policyId"`
	OwnerID   uuid.UUID `json:"userId"`
	Documents []string  `json:"documents"`
}

// TaskQueue hands ingestion work to a background collaborator, decoupled from
// the request path.
type TaskQueue interface {
	Enqueue(ctx context.Context, task *IngestTask) error
}
