package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/progress"
	"github.com/codesye/studentcode-service/internal/repository"
)

type ProgressService interface {
	// GetProgress derives the snapshot from the user's full review history.
	GetProgress(ctx context.Context, userID string) (*domain.ProgressSnapshot, error)
}

type ProgressServiceImpl struct {
	log     *slog.Logger
	reviews repository.ReviewRepository
	now     func() time.Time
}

func NewProgressService(log *slog.Logger, reviews repository.ReviewRepository) *ProgressServiceImpl {
	return &ProgressServiceImpl{
		log:     log,
		reviews: reviews,
		now:     time.Now,
	}
}

func (s *ProgressServiceImpl) GetProgress(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	const op = "internal.service.progress.GetProgress"

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list reviews: %w", op, err)
	}

	snapshot := progress.Compute(reviews, s.now())

	return &snapshot, nil
}
