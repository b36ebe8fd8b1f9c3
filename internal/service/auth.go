package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/repository"
)

// demoAccounts maps the login shortcut names to seeded account emails.
var demoAccounts = map[string]string{
	"alex":  "alex@stanford.edu",
	"sarah": "sarah@mit.edu",
	"mike":  "mike@berkeley.edu",
	"emma":  "emma@cmu.edu",
}

type AuthService interface {
	// DemoLogin issues a session token for one of the demo accounts.
	DemoLogin(ctx context.Context, userType string) (*domain.User, string, error)

	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthServiceImpl struct {
	log      *slog.Logger
	users    repository.UserRepository
	sessions repository.SessionStore
	now      func() time.Time
}

func NewAuthService(log *slog.Logger, users repository.UserRepository, sessions repository.SessionStore) *AuthServiceImpl {
	return &AuthServiceImpl{
		log:      log,
		users:    users,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *AuthServiceImpl) DemoLogin(ctx context.Context, userType string) (*domain.User, string, error) {
	const op = "internal.service.auth.DemoLogin"
	log := s.log.With(slog.String("op", op), slog.String("user_type", userType))

	email, ok := demoAccounts[userType]
	if !ok {
		return nil, "", &apperrors.UnknownUserTypeError{UserType: userType}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	// Opaque token, no expiry baked in; the session store owns the TTL.
	token := fmt.Sprintf("demo-token-%s-%d", user.ID, s.now().UnixMilli())

	if err := s.sessions.Put(ctx, token, user.ID); err != nil {
		return nil, "", fmt.Errorf("%s: failed to store session: %w", op, err)
	}

	log.Info("demo login issued", slog.String("user_id", user.ID))

	return user, token, nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	const op = "internal.service.auth.Authenticate"

	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return nil, apperrors.ErrInvalidToken
		}

		return nil, fmt.Errorf("%s: failed to get session: %w", op, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}
