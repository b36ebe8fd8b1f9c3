// package notify implements the fire-and-forget comment fan-out: a
// websocket hub with per-review rooms, and an optional Redis bridge that
// relays events between instances. Publishing never blocks the HTTP
// request that created the comment.
package notify

import (
	"log/slog"
	"sync"

	"github.com/codesye/studentcode-service/internal/domain"
)

// Event is the payload broadcast to clients watching a review.
type Event struct {
	Type     string         `json:"type"`
	ReviewID string         `json:"review_id"`
	Comment  domain.Comment `json:"comment"`
}

const EventCommentAdded = "comment_added"

// Notifier is the contract the review service publishes through.
type Notifier interface {
	CommentAdded(reviewID string, comment domain.Comment)
}

// Hub tracks which clients watch which review.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

func (h *Hub) Join(reviewID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[reviewID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[reviewID] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) Leave(reviewID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[reviewID]
	if !ok {
		return
	}

	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, reviewID)
	}
}

// CommentAdded fans the event out to every client in the review's room.
// Runs in its own goroutine so callers return immediately; clients whose
// send buffer is full are dropped rather than slowing the rest.
func (h *Hub) CommentAdded(reviewID string, comment domain.Comment) {
	go h.broadcast(Event{
		Type:     EventCommentAdded,
		ReviewID: reviewID,
		Comment:  comment,
	})
}

func (h *Hub) broadcast(event Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[event.ReviewID]))
	for c := range h.rooms[event.ReviewID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(event) {
			h.log.Warn("dropping slow websocket client",
				slog.String("review_id", event.ReviewID),
			)
			h.Leave(event.ReviewID, c)
			c.Close()
		}
	}
}

// ClientCount reports how many clients watch a review. Used in tests.
func (h *Hub) ClientCount(reviewID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[reviewID])
}
