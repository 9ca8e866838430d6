package handlers_test

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/domain/repositories"
	"policy-vault.backend/internal/interfaces/http/middleware"
	"policy-vault.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("production")
}

// asUser injects an authenticated identity the way AuthMiddleware would
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

// stubUserRepo is an in-memory UserRepository keyed by email
type stubUserRepo struct {
	users map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entities.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	for _, user := range r.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

// stubPolicyRepo is an in-memory PolicyRepository
type stubPolicyRepo struct {
	policies map[uuid.UUID]*entities.Policy
	order    []uuid.UUID
}

func newStubPolicyRepo() *stubPolicyRepo {
	return &stubPolicyRepo{policies: make(map[uuid.UUID]*entities.Policy)}
}

func (r *stubPolicyRepo) Create(_ context.Context, policy *entities.Policy) error {
	if policy.ID == uuid.Nil {
		policy.ID = uuid.New()
	}
	r.policies[policy.ID] = policy
	r.order = append(r.order, policy.ID)
	return nil
}

func (r *stubPolicyRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Policy, error) {
	if policy, ok := r.policies[id]; ok {
		return policy, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *stubPolicyRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entities.Policy, error) {
	result := make([]*entities.Policy, 0)
	// Newest first
	for i := len(r.order) - 1; i >= 0; i-- {
		if policy := r.policies[r.order[i]]; policy != nil && policy.OwnerID == ownerID {
			result = append(result, policy)
		}
	}
	return result, nil
}

func (r *stubPolicyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.policies[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.policies, id)
	return nil
}

// stubFileStore records stored filenames and returns predictable paths
type stubFileStore struct {
	stored    []string
	deleted   []string
	storeErr  error
	deleteErr error
}

func (s *stubFileStore) Store(_ context.Context, filename string, content io.Reader) (string, error) {
	if s.storeErr != nil {
		return "", s.storeErr
	}
	_, _ = io.Copy(io.Discard, content)
	s.stored = append(s.stored, filename)
	return "/uploads/" + filename, nil
}

func (s *stubFileStore) Delete(_ context.Context, path string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, path)
	return nil
}

// stubRetrieval returns a canned answer or error
type stubRetrieval struct {
	answer     *entities.ChatAnswer
	err        error
	lastUserID uuid.UUID
	lastQuery  string
	lastTopK   int
}

func (s *stubRetrieval) Query(_ context.Context, userID uuid.UUID, query string, topK int) (*entities.ChatAnswer, error) {
	s.lastUserID = userID
	s.lastQuery = query
	s.lastTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func (s *stubRetrieval) Ingest(_ context.Context, _, _ uuid.UUID, _ []string) error {
	return nil
}

var _ repositories.RetrievalClient = (*stubRetrieval)(nil)
