package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
)

func newReview(id, userID string, createdAt time.Time) *domain.Review {
	return &domain.Review{
		ID:        id,
		UserID:    userID,
		Username:  "tester",
		Code:      "x = 1",
		Language:  "python",
		CreatedAt: createdAt,
		Analysis:  domain.Analysis{QualityScore: 7},
	}
}

func TestReviewStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	review := newReview("review-1", "user-1", time.Now())
	require.NoError(t, store.Create(ctx, review))

	got, err := store.GetByID(ctx, "review-1")
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)
	assert.Equal(t, 7, got.Analysis.QualityScore)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Comments)
}

func TestReviewStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	review := newReview("review-1", "user-1", time.Now())
	require.NoError(t, store.Create(ctx, review))

	err := store.Create(ctx, review)
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	var existsErr *apperrors.ReviewAlreadyExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, "review-1", existsErr.ReviewID)
}

func TestReviewStore_GetByID_NotFound(t *testing.T) {
	store := NewReviewStore()

	_, err := store.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewStore_List_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("review-%d", i)
		require.NoError(t, store.Create(ctx, newReview(id, "user-1", time.Now())))
	}

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 5)

	for i, r := range reviews {
		assert.Equal(t, fmt.Sprintf("review-%d", i), r.ID)
	}
}

func TestReviewStore_List_CreationTimeOrder(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, newReview("review-late", "user-1", base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newReview("review-early", "user-1", base)))

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "review-early", reviews[0].ID)
	assert.Equal(t, "review-late", reviews[1].ID)
}

func TestReviewStore_ListByUser_OrderedByCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// Inserted out of creation-time order on purpose.
	require.NoError(t, store.Create(ctx, newReview("review-b", "user-1", base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newReview("review-a", "user-1", base)))
	require.NoError(t, store.Create(ctx, newReview("review-x", "user-2", base)))

	reviews, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "review-a", reviews[0].ID)
	assert.Equal(t, "review-b", reviews[1].ID)
}

func TestReviewStore_AppendComment(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	require.NoError(t, store.Create(ctx, newReview("review-1", "user-1", time.Now())))

	comment := &domain.Comment{ID: "comment-1", UserID: "user-2", Content: "nice work"}
	require.NoError(t, store.AppendComment(ctx, "review-1", comment))

	got, err := store.GetByID(ctx, "review-1")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "comment-1", got.Comments[0].ID)
}

func TestReviewStore_AppendComment_NotFound(t *testing.T) {
	store := NewReviewStore()

	err := store.AppendComment(context.Background(), "missing", &domain.Comment{ID: "c1"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	require.NoError(t, store.Create(ctx, newReview("review-1", "user-1", time.Now())))

	first, err := store.GetByID(ctx, "review-1")
	require.NoError(t, err)
	first.Comments = append(first.Comments, domain.Comment{ID: "rogue"})
	first.Analysis.QualityScore = 0

	second, err := store.GetByID(ctx, "review-1")
	require.NoError(t, err)
	assert.Empty(t, second.Comments)
	assert.Equal(t, 7, second.Analysis.QualityScore)
}

func TestReviewStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore()

	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			id := fmt.Sprintf("review-%d", i)
			assert.NoError(t, store.Create(ctx, newReview(id, "user-1", time.Now())))
		}(i)
	}
	wg.Wait()

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, n)
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	store.Add(domain.User{ID: "user-1", Username: "alex_coder", Email: "alex@stanford.edu"})

	byID, err := store.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alex_coder", byID.Username)

	byEmail, err := store.GetByEmail(ctx, "alex@stanford.edu")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	_, err = store.GetByID(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = store.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(t, store.Put(ctx, "token-1", "user-1"))

	userID, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, store.Delete(ctx, "token-1"))

	_, err = store.Get(ctx, "token-1")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	reviews := NewReviewStore()

	require.NoError(t, Seed(users, reviews))

	user, err := users.GetByEmail(ctx, "alex@stanford.edu")
	require.NoError(t, err)
	assert.Equal(t, "alex_coder", user.Username)

	all, err := reviews.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	for _, r := range all {
		assert.NotEmpty(t, r.Analysis.OverallAssessment)
		assert.NotZero(t, r.Analysis.QualityScore)
	}
}
