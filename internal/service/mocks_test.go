package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/codesye/studentcode-service/internal/analysis"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/repository"
)

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) List(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) AppendComment(ctx context.Context, reviewID string, comment *domain.Comment) error {
	args := m.Called(ctx, reviewID, comment)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type SessionStoreMock struct {
	mock.Mock
}

var _ repository.SessionStore = (*SessionStoreMock)(nil)

func (m *SessionStoreMock) Put(ctx context.Context, token string, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *SessionStoreMock) Get(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *SessionStoreMock) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type CodeAnalyzerMock struct {
	mock.Mock
}

var _ CodeAnalyzer = (*CodeAnalyzerMock)(nil)

func (m *CodeAnalyzerMock) Analyze(ctx context.Context, req analysis.Request) (domain.Analysis, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Analysis), args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) CommentAdded(reviewID string, comment domain.Comment) {
	m.Called(reviewID, comment)
}
