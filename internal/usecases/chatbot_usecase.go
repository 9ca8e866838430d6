package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/domain/repositories"
)

// ChatbotUsecase relays natural-language questions to the external retrieval
// service, scoped to the asking user's documents.
type ChatbotUsecase struct {
	retrieval   repositories.RetrievalClient
	defaultTopK int
}

// NewChatbotUsecase creates a new chatbot usecase
func NewChatbotUsecase(retrieval repositories.RetrievalClient, defaultTopK int) *ChatbotUsecase {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &ChatbotUsecase{
		retrieval:   retrieval,
		defaultTopK: defaultTopK,
	}
}

// Ask forwards the query and relays the answer. Upstream failures surface as
// external-service errors with the upstream payload attached.
func (u *ChatbotUsecase) Ask(ctx context.Context, userID uuid.UUID, input *entities.ChatQueryInput) (*entities.ChatAnswer, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domainerrors.BadRequest("query is required")
	}

	topK := input.TopK
	if topK <= 0 {
		topK = u.defaultTopK
	}

	return u.retrieval.Query(ctx, userID, query, topK)
}
