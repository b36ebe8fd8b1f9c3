package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/pkg/logger/sl"
)

const commentChannel = "comment_added"

// Bridge relays comment events through a Redis channel so clients
// connected to other instances see them too. It wraps a Hub: local
// publishes go to Redis, and the subscriber loop feeds every message
// (including our own) back into the hub.
type Bridge struct {
	hub    *Hub
	client *goredis.Client
	log    *slog.Logger
}

func NewBridge(hub *Hub, client *goredis.Client, log *slog.Logger) *Bridge {
	return &Bridge{
		hub:    hub,
		client: client,
		log:    log,
	}
}

// CommentAdded publishes the event to Redis. Delivery to websocket
// clients happens when the subscriber loop receives it back.
func (b *Bridge) CommentAdded(reviewID string, comment domain.Comment) {
	go func() {
		event := Event{
			Type:     EventCommentAdded,
			ReviewID: reviewID,
			Comment:  comment,
		}

		payload, err := json.Marshal(event)
		if err != nil {
			b.log.Error("failed to marshal comment event", sl.Err(err))
			return
		}

		if err := b.client.Publish(context.Background(), commentChannel, payload).Err(); err != nil {
			b.log.Error("failed to publish comment event", sl.Err(err))
			b.hub.CommentAdded(reviewID, comment)
		}
	}()
}

// Run consumes the Redis channel until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	const op = "internal.notify.Bridge.Run"

	sub := b.client.Subscribe(ctx, commentChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%s: failed to subscribe: %w", op, err)
	}

	ch := sub.Channel()

	b.log.Info("comment bridge subscribed", slog.String("channel", commentChannel))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.log.Error("failed to decode comment event", sl.Err(err))
				continue
			}

			b.hub.CommentAdded(event.ReviewID, event.Comment)
		}
	}
}
