// Package notifications publishes activity events into Redis channels so
// downstream consumers (push workers, cache warmers) can react to them.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is the payload published for every activity notification.
type Event struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	PostID    uint      `json:"post_id,omitempty"`
	ActorID   uint      `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types published by the API.
const (
	EventPostCreated  = "post.created"
	EventPostLiked    = "post.liked"
	EventPostUnliked  = "post.unliked"
	EventCommentAdded = "comment.added"
)

// Notifier provides helpers to publish activity events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishActivity sends an event to the owner's channel and the broadcast
// channel. A nil Redis client makes all publishes a no-op.
func (n *Notifier) PublishActivity(ctx context.Context, ownerID uint, eventType string, postID, actorID uint) error {
	if n.rdb == nil {
		return nil
	}
	event := Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		PostID:    postID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, UserChannel(ownerID), payload).Err(); err != nil {
		return err
	}
	return n.rdb.Publish(ctx, "activity:broadcast", payload).Err()
}

// StartActivitySubscriber subscribes to the activity channels and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartActivitySubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "activity:user:*", "activity:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in ActivitySubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "activity:user:" + strconv.FormatUint(uint64(userID), 10)
}
