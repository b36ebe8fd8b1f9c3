// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying store (in-memory maps or
// Postgres) from the service layer.
package repository

import (
	"context"

	"github.com/codesye/studentcode-service/internal/domain"
)

// ReviewRepository owns Review records and their comment threads.
type ReviewRepository interface {
	// Create inserts a review under its pre-generated identifier.
	// It returns apperrors.ErrAlreadyExists if the identifier collides.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID returns the review with its comments in arrival order.
	// It returns apperrors.ErrNotFound if the review does not exist.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// List returns all reviews ordered by creation time ascending, with
	// insertion order breaking ties.
	List(ctx context.Context) ([]domain.Review, error)

	// ListByUser returns one user's reviews ordered by creation time
	// ascending, the order the progress aggregator requires.
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)

	// AppendComment adds a comment to the review's thread in arrival
	// order. It returns apperrors.ErrNotFound without mutating anything
	// if the review does not exist.
	AppendComment(ctx context.Context, reviewID string, comment *domain.Comment) error
}

// UserRepository provides read access to the account records.
type UserRepository interface {
	// GetByID returns apperrors.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail returns apperrors.ErrNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionStore maps opaque bearer tokens to user ids.
type SessionStore interface {
	Put(ctx context.Context, token string, userID string) error

	// Get returns apperrors.ErrInvalidToken for unknown tokens.
	Get(ctx context.Context, token string) (string, error)

	Delete(ctx context.Context, token string) error
}
