package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byUsername, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_AbsentIsNilNil(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		Username: "taken", Email: "first@example.com", Password: "hash",
	}))

	err := repo.Create(ctx, &models.User{
		Username: "taken", Email: "second@example.com", Password: "hash",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserRepository_List(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		require.NoError(t, repo.Create(ctx, &models.User{
			Username: name, Email: name + "@example.com", Password: "hash",
		}))
	}

	users, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
