package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// reviewRow is the flat scan target; the analysis column holds the full
// Analysis record as JSONB.
type reviewRow struct {
	ID                 string `db:"id"`
	UserID             string `db:"user_id"`
	Username           string `db:"username"`
	Code               string `db:"code"`
	Language           string `db:"language"`
	ProblemTitle       string `db:"problem_title"`
	ProblemDescription string `db:"problem_description"`
	Analysis           []byte `db:"analysis"`
	CreatedAt          sql.NullTime `db:"created_at"`
}

func (row reviewRow) toDomain() (domain.Review, error) {
	review := domain.Review{
		ID:                 row.ID,
		UserID:             row.UserID,
		Username:           row.Username,
		Code:               row.Code,
		Language:           row.Language,
		ProblemTitle:       row.ProblemTitle,
		ProblemDescription: row.ProblemDescription,
		Comments:           []domain.Comment{},
	}
	if row.CreatedAt.Valid {
		review.CreatedAt = row.CreatedAt.Time
	}

	if err := json.Unmarshal(row.Analysis, &review.Analysis); err != nil {
		return domain.Review{}, fmt.Errorf("failed to decode analysis: %w", err)
	}

	return review, nil
}

var reviewColumns = []string{
	"id", "user_id", "username", "code", "language",
	"problem_title", "problem_description", "analysis", "created_at",
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const op = "internal.repository.postgres.Create"

	analysisJSON, err := json.Marshal(review.Analysis)
	if err != nil {
		return fmt.Errorf("%s: failed to encode analysis: %w", op, err)
	}

	query, args, err := r.sq.Insert("reviews").
		Columns(reviewColumns...).
		Values(
			review.ID, review.UserID, review.Username, review.Code, review.Language,
			review.ProblemTitle, review.ProblemDescription, analysisJSON, review.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return &apperrors.ReviewAlreadyExistsError{ReviewID: review.ID}
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: user with id '%s' not found", op, apperrors.ErrNotFound, review.UserID)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	const op = "internal.repository.postgres.GetByID"

	query, args, err := r.sq.Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row reviewRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	review, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments, err := r.getComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get comments: %w", op, err)
	}
	review.Comments = comments

	return &review, nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	const op = "internal.repository.postgres.List"

	return r.list(ctx, op, sq.Eq{})
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	const op = "internal.repository.postgres.ListByUser"

	return r.list(ctx, op, sq.Eq{"user_id": userID})
}

func (r *ReviewRepository) list(ctx context.Context, op string, where sq.Eq) ([]domain.Review, error) {
	// ord alone is not enough: with several instances writing, insertion
	// order can diverge from creation time.
	builder := r.sq.Select(reviewColumns...).
		From("reviews").
		OrderBy("created_at ASC", "ord ASC")

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	reviews := make([]domain.Review, 0, len(rows))
	reviewByID := make(map[string]*domain.Review, len(rows))

	for _, row := range rows {
		review, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		reviews = append(reviews, review)
		reviewByID[review.ID] = &reviews[len(reviews)-1]
	}

	if len(reviews) == 0 {
		return reviews, nil
	}

	comments, err := r.getCommentsForReviews(ctx, keys(reviewByID))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get comments: %w", op, err)
	}

	for _, c := range comments {
		if review, ok := reviewByID[c.reviewID]; ok {
			review.Comments = append(review.Comments, c.comment)
		}
	}

	return reviews, nil
}

func (r *ReviewRepository) AppendComment(ctx context.Context, reviewID string, comment *domain.Comment) error {
	const op = "internal.repository.postgres.AppendComment"

	query, args, err := r.sq.Insert("comments").
		Columns("id", "review_id", "user_id", "username", "content", "line", "is_peer_review", "rating", "created_at").
		Values(
			comment.ID, reviewID, comment.UserID, comment.Username, comment.Content,
			comment.Line, comment.IsPeerReview, comment.Rating, comment.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

type commentRow struct {
	domain.Comment
	ReviewID string `db:"review_id"`
}

type reviewComment struct {
	reviewID string
	comment  domain.Comment
}

func (r *ReviewRepository) getComments(ctx context.Context, reviewID string) ([]domain.Comment, error) {
	rows, err := r.getCommentsForReviews(ctx, []string{reviewID})
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, c := range rows {
		comments = append(comments, c.comment)
	}

	return comments, nil
}

func (r *ReviewRepository) getCommentsForReviews(ctx context.Context, reviewIDs []string) ([]reviewComment, error) {
	query, args, err := r.sq.Select(
		"id", "review_id", "user_id", "username", "content", "line", "is_peer_review", "rating", "created_at",
	).
		From("comments").
		Where(sq.Eq{"review_id": reviewIDs}).
		OrderBy("ord ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comments query: %w", err)
	}

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select comments: %w", err)
	}

	comments := make([]reviewComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, reviewComment{reviewID: row.ReviewID, comment: row.Comment})
	}

	return comments, nil
}

func keys(m map[string]*domain.Review) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}

	return ids
}
