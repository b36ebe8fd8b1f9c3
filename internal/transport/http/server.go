// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service
// methods, and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codesye/studentcode-service/internal/analysis"
	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/notify"
	"github.com/codesye/studentcode-service/internal/service"
	"github.com/codesye/studentcode-service/internal/validation"
	"github.com/codesye/studentcode-service/pkg/logger/sl"
)

// Server holds the dependencies for the HTTP server, including the logger
// and service interfaces.
type Server struct {
	log             *slog.Logger
	authService     service.AuthService
	reviewService   service.ReviewService
	progressService service.ProgressService
	hub             *notify.Hub
	limiter         *ipLimiter
}

// NewServer creates a new instance of the HTTP server. hub may be nil when
// the websocket endpoint is not served.
func NewServer(
	log *slog.Logger,
	as service.AuthService,
	rs service.ReviewService,
	ps service.ProgressService,
	hub *notify.Hub,
) *Server {
	return &Server{
		log:             log,
		authService:     as,
		reviewService:   rs,
		progressService: ps,
		hub:             hub,
		limiter:         newIPLimiter(rateLimitPerSecond, rateLimitBurst),
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		AllowCredentials: false,
	}))
	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(s.rateLimit)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Get("/health", s.GetHealth)
		r.Post("/demo-login", s.PostDemoLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/reviews", s.GetReviews)
			r.Post("/reviews", s.PostReview)
			r.Get("/reviews/{id}", s.GetReviewByID)
			r.Post("/reviews/{id}/comments", s.PostComment)
			r.Post("/analyze", s.PostAnalyze)
			r.Get("/progress", s.GetProgress)
		})
	})

	if s.hub != nil {
		mux.Get("/ws/reviews/{id}", s.GetReviewSocket)
	}

	return mux
}

func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) PostDemoLogin(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostDemoLogin"

	var req demoLoginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	user, token, err := s.authService.DemoLogin(r.Context(), req.UserType)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (s *Server) GetReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetReviews"

	reviews, err := s.reviewService.ListReviews(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Review{"reviews": reviews})
}

func (s *Server) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetReviewByID"

	id, err := s.reviewIDFromPath(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	review, err := s.reviewService.GetReview(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Review{"review": review})
}

func (s *Server) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostReview"

	user, err := userFromContext(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req createReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	review, err := s.reviewService.CreateReview(r.Context(), service.CreateReviewInput{
		UserID:             user.ID,
		Code:               req.Code,
		Language:           req.Language,
		ProblemTitle:       req.ProblemTitle,
		ProblemDescription: req.ProblemDescription,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Review{"review": review})
}

func (s *Server) PostComment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostComment"

	user, err := userFromContext(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	id, err := s.reviewIDFromPath(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	var req addCommentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	comment, err := s.reviewService.AddComment(r.Context(), service.AddCommentInput{
		ReviewID:     id,
		UserID:       user.ID,
		Content:      req.Content,
		Line:         req.Line,
		IsPeerReview: req.IsPeerReview,
		Rating:       req.Rating,
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Comment{"comment": comment})
}

func (s *Server) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostAnalyze"

	var req analyzeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	result, err := s.reviewService.AnalyzeOnly(r.Context(), analysis.Request{
		Code:               req.Code,
		Language:           req.Language,
		ProblemDescription: req.ProblemDescription,
		SkillLevel:         domain.ParseSkillLevel(req.SkillLevel),
	})
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.Analysis{"analysis": result})
}

func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetProgress"

	user, err := userFromContext(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	snapshot, err := s.progressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.ProgressSnapshot{"progress": snapshot})
}

// respond is a helper function to encode data to JSON and write it to the
// response. It centralizes setting the Content-Type header and writing the
// status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple
// error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into
// a struct and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// reviewIDFromPath extracts and validates the {id} path parameter.
func (s *Server) reviewIDFromPath(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")

	if err := validation.ValidateStruct(&reviewIDParam{ID: id}); err != nil {
		return "", err
	}

	return id, nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP
// handlers. It logs the internal error and maps it to a user-friendly HTTP
// response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrInvalidToken):
		s.respondError(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, "resource already exists")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
