//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
)

func TestUserRepository_Upsert(t *testing.T) {
	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	user := domain.User{
		ID:        "user-1",
		Username:  "alex_coder",
		Email:     "alex@stanford.edu",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Upsert(ctx, user))

	// Second upsert with a changed username must leave the row untouched.
	user.Username = "renamed"
	require.NoError(t, repo.Upsert(ctx, user))

	got, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alex_coder", got.Username)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.User{
		ID:        "user-1",
		Username:  "alex_coder",
		Email:     "alex@stanford.edu",
		CreatedAt: time.Now().UTC(),
	}))

	got, err := repo.GetByEmail(ctx, "alex@stanford.edu")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
