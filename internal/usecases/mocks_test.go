package usecases_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"policy-vault.backend/internal/domain/entities"
	"policy-vault.backend/internal/domain/repositories"
	"policy-vault.backend/pkg/logger"
)

func init() {
	logger.Init("production")
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// Mock PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) Create(ctx context.Context, policy *entities.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Policy), args.Error(1)
}

func (m *MockPolicyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Policy, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Policy), args.Error(1)
}

func (m *MockPolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// Mock TaskQueue
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *repositories.IngestTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Mock RetrievalClient
type MockRetrievalClient struct {
	mock.Mock
}

func (m *MockRetrievalClient) Query(ctx context.Context, userID uuid.UUID, query string, topK int) (*entities.ChatAnswer, error) {
	args := m.Called(ctx, userID, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChatAnswer), args.Error(1)
}

func (m *MockRetrievalClient) Ingest(ctx context.Context, policyID, userID uuid.UUID, documents []string) error {
	args := m.Called(ctx, policyID, userID, documents)
	return args.Error(0)
}
