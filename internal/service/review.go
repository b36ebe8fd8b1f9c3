// package service contains the business logic, sitting between HTTP
// transport and the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codesye/studentcode-service/internal/analysis"
	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/notify"
	"github.com/codesye/studentcode-service/internal/repository"
)

// CodeAnalyzer produces an Analysis for a submission. Satisfied by
// *analysis.Analyzer.
type CodeAnalyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (domain.Analysis, error)
}

type CreateReviewInput struct {
	UserID             string
	Code               string
	Language           string
	ProblemTitle       string
	ProblemDescription string
}

type AddCommentInput struct {
	ReviewID     string
	UserID       string
	Content      string
	Line         *int
	IsPeerReview bool
	Rating       *int
}

type ReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
	AddComment(ctx context.Context, input AddCommentInput) (*domain.Comment, error)
	AnalyzeOnly(ctx context.Context, req analysis.Request) (domain.Analysis, error)
}

type ReviewServiceImpl struct {
	log      *slog.Logger
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	analyzer CodeAnalyzer
	notifier notify.Notifier
	now      func() time.Time
}

func NewReviewService(
	log *slog.Logger,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	analyzer CodeAnalyzer,
	notifier notify.Notifier,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		log:      log,
		reviews:  reviews,
		users:    users,
		analyzer: analyzer,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateReview runs the analysis pipeline and persists the review in a
// single operation. The write happens only after the analysis is final,
// so a stored review always carries a complete Analysis record.
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	const op = "internal.service.review.CreateReview"
	log := s.log.With(slog.String("op", op), slog.String("user_id", input.UserID))

	if strings.TrimSpace(input.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Language) == "" {
		return nil, fmt.Errorf("%w: language is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(input.ProblemTitle) == "" {
		return nil, fmt.Errorf("%w: problem title is required", apperrors.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	result, err := s.analyzer.Analyze(ctx, analysis.Request{
		Code:               input.Code,
		Language:           input.Language,
		ProblemDescription: input.ProblemDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to analyze code: %w", op, err)
	}

	review := &domain.Review{
		ID:                 domain.NewReviewID(),
		UserID:             user.ID,
		Username:           user.Username,
		Code:               input.Code,
		Language:           input.Language,
		ProblemTitle:       input.ProblemTitle,
		ProblemDescription: input.ProblemDescription,
		Analysis:           result,
		CreatedAt:          s.now().UTC(),
		Comments:           []domain.Comment{},
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("%s: failed to create review: %w", op, err)
	}

	log.Info("review created",
		slog.String("review_id", review.ID),
		slog.String("language", review.Language),
		slog.Int("quality_score", review.Analysis.QualityScore),
	)

	return review, nil
}

func (s *ReviewServiceImpl) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	const op = "internal.service.review.GetReview"

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: review '%s'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListReviews(ctx context.Context) ([]domain.Review, error) {
	const op = "internal.service.review.ListReviews"

	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list reviews: %w", op, err)
	}

	return reviews, nil
}

// AddComment persists the comment, then notifies watchers. Notification
// failures never affect the response; persistence is the source of truth.
func (s *ReviewServiceImpl) AddComment(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
	const op = "internal.service.review.AddComment"
	log := s.log.With(slog.String("op", op), slog.String("review_id", input.ReviewID))

	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperrors.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	comment := &domain.Comment{
		ID:           domain.NewCommentID(),
		UserID:       user.ID,
		Username:     user.Username,
		Content:      input.Content,
		Line:         input.Line,
		IsPeerReview: input.IsPeerReview,
		Rating:       input.Rating,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.reviews.AppendComment(ctx, input.ReviewID, comment); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: review '%s'", apperrors.ErrNotFound, input.ReviewID)
		}

		return nil, fmt.Errorf("%s: failed to append comment: %w", op, err)
	}

	if s.notifier != nil {
		s.notifier.CommentAdded(input.ReviewID, *comment)
	}

	log.Info("comment added", slog.String("comment_id", comment.ID))

	return comment, nil
}

// AnalyzeOnly runs the analysis pipeline without persisting anything.
// Backs the standalone analyze endpoint.
func (s *ReviewServiceImpl) AnalyzeOnly(ctx context.Context, req analysis.Request) (domain.Analysis, error) {
	const op = "internal.service.review.AnalyzeOnly"
	log := s.log.With(slog.String("op", op), slog.String("language", req.Language))

	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("%s: failed to analyze code: %w", op, err)
	}

	log.Info("code analyzed", slog.Int("quality_score", result.QualityScore))

	return result, nil
}

var _ notify.Notifier = noopNotifier{}

// noopNotifier stands in when no websocket hub is wired, e.g. in tests.
type noopNotifier struct{}

func (noopNotifier) CommentAdded(string, domain.Comment) {}

func NoopNotifier() notify.Notifier { return noopNotifier{} }
