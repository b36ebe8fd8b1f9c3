// package memory implements the repository interfaces on top of
// mutex-guarded maps, matching the reference system's transient store. It
// doubles as the storage backend for tests and local demos.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
)

// ReviewStore holds reviews and their comment threads. A single RWMutex
// serializes mutations so concurrent creates and comment appends cannot
// lose data; reads work on copies so callers never observe in-place
// mutation.
type ReviewStore struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
	order   []string
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: make(map[string]*domain.Review)}
}

func (s *ReviewStore) Create(_ context.Context, review *domain.Review) error {
	const op = "internal.repository.memory.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; ok {
		return fmt.Errorf("%s: %w", op, &apperrors.ReviewAlreadyExistsError{ReviewID: review.ID})
	}

	stored := cloneReview(review)
	if stored.Comments == nil {
		stored.Comments = []domain.Comment{}
	}

	s.reviews[review.ID] = stored
	s.order = append(s.order, review.ID)

	return nil
}

func (s *ReviewStore) GetByID(_ context.Context, id string) (*domain.Review, error) {
	const op = "internal.repository.memory.GetByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, id)
	}

	return cloneReview(review), nil
}

func (s *ReviewStore) List(_ context.Context) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]domain.Review, 0, len(s.order))
	for _, id := range s.order {
		reviews = append(reviews, *cloneReview(s.reviews[id]))
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})

	return reviews, nil
}

func (s *ReviewStore) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []domain.Review{}
	for _, id := range s.order {
		if s.reviews[id].UserID == userID {
			reviews = append(reviews, *cloneReview(s.reviews[id]))
		}
	}

	// Insertion order tracks creation time for this store, but the
	// aggregator contract is explicit about time ordering.
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})

	return reviews, nil
}

func (s *ReviewStore) AppendComment(_ context.Context, reviewID string, comment *domain.Comment) error {
	const op = "internal.repository.memory.AppendComment"

	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
	}

	review.Comments = append(review.Comments, *comment)

	return nil
}

func cloneReview(r *domain.Review) *domain.Review {
	clone := *r
	clone.Comments = append([]domain.Comment(nil), r.Comments...)
	clone.Analysis.Suggestions = append([]domain.Suggestion(nil), r.Analysis.Suggestions...)
	clone.Analysis.Recommendations = append([]string(nil), r.Analysis.Recommendations...)
	clone.Analysis.LearningTips = append([]string(nil), r.Analysis.LearningTips...)

	return &clone
}

// UserStore holds the account records. Accounts are created once and never
// mutated, so a plain map behind an RWMutex is enough.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	const op = "internal.repository.memory.UserStore.GetByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, id)
	}

	return &user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	const op = "internal.repository.memory.UserStore.GetByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%s: %w: user with email '%s'", op, apperrors.ErrNotFound, email)
	}

	user := s.byID[id]

	return &user, nil
}

// Add registers an account. Used by seeding and tests.
func (s *UserStore) Add(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
}

// SessionStore keeps opaque bearer tokens in process memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

func (s *SessionStore) Put(_ context.Context, token string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = userID

	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (string, error) {
	const op = "internal.repository.memory.SessionStore.Get"

	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	return userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)

	return nil
}
