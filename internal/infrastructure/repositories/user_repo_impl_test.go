package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	u := &entities.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.Name, byID.Name)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))
	updated, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "hash2", updated.PasswordHash)
}

func TestUserRepository_GeneratesIDWhenMissing(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	u := &entities.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	require.NotEqual(t, uuid.Nil, u.ID)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdatePassword(ctx, id, "hash")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
