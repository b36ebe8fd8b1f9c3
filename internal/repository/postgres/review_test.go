//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
)

func setupReviewTest(t *testing.T) (*ReviewRepository, *UserRepository) {
	t.Helper()
	truncateTables(t, testDB)

	users := NewUserRepository(testDB, logger)
	require.NoError(t, users.Upsert(context.Background(), domain.User{
		ID:        "user-1",
		Username:  "alex_coder",
		Email:     "alex@stanford.edu",
		CreatedAt: time.Now().UTC(),
	}))

	return NewReviewRepository(testDB, logger), users
}

func testReview(id string) *domain.Review {
	return &domain.Review{
		ID:           id,
		UserID:       "user-1",
		Username:     "alex_coder",
		Code:         "x = 1",
		Language:     "python",
		ProblemTitle: "Test",
		Analysis: domain.Analysis{
			QualityScore:    7,
			Suggestions:     []domain.Suggestion{{Type: domain.SuggestionStyle, Title: "Naming"}},
			TimeComplexity:  "O(1)",
			SpaceComplexity: "O(1)",
			Recommendations: []string{"use descriptive names"},
			LearningTips:    []string{"read PEP 8"},
			Timestamp:       time.Now().UTC(),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestReviewRepository_CreateAndGet(t *testing.T) {
	repo, _ := setupReviewTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testReview("review-1")))

	got, err := repo.GetByID(ctx, "review-1")
	require.NoError(t, err)

	assert.Equal(t, "review-1", got.ID)
	assert.Equal(t, 7, got.Analysis.QualityScore)
	require.Len(t, got.Analysis.Suggestions, 1)
	assert.Equal(t, domain.SuggestionStyle, got.Analysis.Suggestions[0].Type)
	assert.Empty(t, got.Comments)
}

func TestReviewRepository_CreateDuplicate(t *testing.T) {
	repo, _ := setupReviewTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testReview("review-1")))

	err := repo.Create(ctx, testReview("review-1"))
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestReviewRepository_CreateUnknownUser(t *testing.T) {
	repo, _ := setupReviewTest(t)

	review := testReview("review-1")
	review.UserID = "ghost"

	err := repo.Create(context.Background(), review)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	repo, _ := setupReviewTest(t)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_List_InsertionOrder(t *testing.T) {
	repo, _ := setupReviewTest(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, testReview(fmt.Sprintf("review-%d", i))))
	}

	reviews, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 5)

	for i, r := range reviews {
		assert.Equal(t, fmt.Sprintf("review-%d", i), r.ID)
	}
}

func TestReviewRepository_List_CreationTimeOrder(t *testing.T) {
	repo, _ := setupReviewTest(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)

	late := testReview("review-late")
	late.CreatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, late))

	early := testReview("review-early")
	early.CreatedAt = base
	require.NoError(t, repo.Create(ctx, early))

	reviews, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "review-early", reviews[0].ID, "creation time wins over insertion order")
	assert.Equal(t, "review-late", reviews[1].ID)

	byUser, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, "review-early", byUser[0].ID)
}

func TestReviewRepository_AppendComment(t *testing.T) {
	repo, _ := setupReviewTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testReview("review-1")))

	first := &domain.Comment{ID: "comment-1", UserID: "user-1", Username: "alex_coder", Content: "first", CreatedAt: time.Now().UTC()}
	second := &domain.Comment{ID: "comment-2", UserID: "user-1", Username: "alex_coder", Content: "second", CreatedAt: time.Now().UTC()}

	require.NoError(t, repo.AppendComment(ctx, "review-1", first))
	require.NoError(t, repo.AppendComment(ctx, "review-1", second))

	got, err := repo.GetByID(ctx, "review-1")
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Content)
	assert.Equal(t, "second", got.Comments[1].Content)
}

func TestReviewRepository_AppendComment_UnknownReview(t *testing.T) {
	repo, _ := setupReviewTest(t)

	comment := &domain.Comment{ID: "comment-1", UserID: "user-1", Username: "alex_coder", Content: "hello"}

	err := repo.AppendComment(context.Background(), "missing", comment)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_ListByUser(t *testing.T) {
	repo, users := setupReviewTest(t)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, domain.User{
		ID:        "user-2",
		Username:  "sarah_dev",
		Email:     "sarah@mit.edu",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, repo.Create(ctx, testReview("review-1")))

	other := testReview("review-2")
	other.UserID = "user-2"
	other.Username = "sarah_dev"
	require.NoError(t, repo.Create(ctx, other))

	reviews, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "review-1", reviews[0].ID)
}
