package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/codesye/studentcode-service/internal/notify"
	"github.com/codesye/studentcode-service/pkg/logger/sl"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin checks are handled by the CORS layer; the token is
	// the real gate here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetReviewSocket upgrades the connection and subscribes the client to the
// review's comment events. Auth uses the 'token' query parameter because
// browsers cannot set headers on websocket requests.
func (s *Server) GetReviewSocket(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetReviewSocket"

	reviewID, err := s.reviewIDFromPath(r)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if _, err := s.authService.Authenticate(r.Context(), r.URL.Query().Get("token")); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if _, err := s.reviewService.GetReview(r.Context(), reviewID); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := notify.NewClient(conn, s.log)

	s.hub.Join(reviewID, client)
	defer s.hub.Leave(reviewID, client)

	client.Run()
}
