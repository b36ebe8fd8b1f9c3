package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "internal.repository.postgres.UserRepository.GetByID"

	return r.get(ctx, op, sq.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "internal.repository.postgres.UserRepository.GetByEmail"

	return r.get(ctx, op, sq.Eq{"email": email})
}

func (r *UserRepository) get(ctx context.Context, op string, where sq.Eq) (*domain.User, error) {
	query, args, err := r.sq.Select("id", "username", "email", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}

// Upsert inserts an account or leaves an existing one untouched. Used by
// the seeder so repeated startups are idempotent.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) error {
	const op = "internal.repository.postgres.UserRepository.Upsert"

	query, args, err := r.sq.Insert("users").
		Columns("id", "username", "email", "created_at").
		Values(user.ID, user.Username, user.Email, user.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}
