package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/codesye/studentcode-service/internal/analysis"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/service"
)

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) DemoLogin(ctx context.Context, userType string) (*domain.User, string, error) {
	args := m.Called(ctx, userType)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}

	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) CreateReview(ctx context.Context, input service.CreateReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) ListReviews(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) AddComment(ctx context.Context, input service.AddCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *ReviewServiceMock) AnalyzeOnly(ctx context.Context, req analysis.Request) (domain.Analysis, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Analysis), args.Error(1)
}

type ProgressServiceMock struct {
	mock.Mock
}

var _ service.ProgressService = (*ProgressServiceMock)(nil)

func (m *ProgressServiceMock) GetProgress(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ProgressSnapshot), args.Error(1)
}
