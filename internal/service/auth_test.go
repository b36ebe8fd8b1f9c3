package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codesye/studentcode-service/internal/apperrors"
)

func TestAuthService_DemoLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := new(UserRepositoryMock)
		sessions := new(SessionStoreMock)

		users.On("GetByEmail", mock.Anything, "alex@stanford.edu").Return(testUser, nil).Once()
		sessions.On("Put", mock.Anything, mock.MatchedBy(func(token string) bool {
			return strings.HasPrefix(token, "demo-token-user-1-")
		}), "user-1").Return(nil).Once()

		svc := NewAuthService(testLogger, users, sessions)
		svc.now = func() time.Time { return testTime }

		user, token, err := svc.DemoLogin(context.Background(), "alex")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "demo-token-user-1-1710504000000", token)
		sessions.AssertExpectations(t)
	})

	t.Run("Unknown User Type", func(t *testing.T) {
		svc := NewAuthService(testLogger, new(UserRepositoryMock), new(SessionStoreMock))

		_, _, err := svc.DemoLogin(context.Background(), "bob")

		require.ErrorIs(t, err, apperrors.ErrInvalidInput)

		var unknownErr *apperrors.UnknownUserTypeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "bob", unknownErr.UserType)
	})

	t.Run("Seed Missing", func(t *testing.T) {
		users := new(UserRepositoryMock)
		users.On("GetByEmail", mock.Anything, "sarah@mit.edu").Return(nil, apperrors.ErrNotFound).Once()

		svc := NewAuthService(testLogger, users, new(SessionStoreMock))

		_, _, err := svc.DemoLogin(context.Background(), "sarah")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := new(UserRepositoryMock)
		sessions := new(SessionStoreMock)

		sessions.On("Get", mock.Anything, "token-1").Return("user-1", nil).Once()
		users.On("GetByID", mock.Anything, "user-1").Return(testUser, nil).Once()

		svc := NewAuthService(testLogger, users, sessions)

		user, err := svc.Authenticate(context.Background(), "token-1")

		require.NoError(t, err)
		assert.Equal(t, "alex_coder", user.Username)
	})

	t.Run("Empty Token", func(t *testing.T) {
		svc := NewAuthService(testLogger, new(UserRepositoryMock), new(SessionStoreMock))

		_, err := svc.Authenticate(context.Background(), "")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		sessions.On("Get", mock.Anything, "bad-token").Return("", apperrors.ErrInvalidToken).Once()

		svc := NewAuthService(testLogger, new(UserRepositoryMock), sessions)

		_, err := svc.Authenticate(context.Background(), "bad-token")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Stale Session For Deleted User", func(t *testing.T) {
		users := new(UserRepositoryMock)
		sessions := new(SessionStoreMock)

		sessions.On("Get", mock.Anything, "token-1").Return("user-9", nil).Once()
		users.On("GetByID", mock.Anything, "user-9").Return(nil, apperrors.ErrNotFound).Once()

		svc := NewAuthService(testLogger, users, sessions)

		_, err := svc.Authenticate(context.Background(), "token-1")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
