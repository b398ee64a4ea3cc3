package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)

	err := n.PublishActivity(context.Background(), 1, EventPostLiked, 2, 3)
	assert.NoError(t, err)

	err = n.StartActivitySubscriber(context.Background(), func(string, string) {})
	assert.NoError(t, err)
}

func TestNotifier_PublishActivity(t *testing.T) {
	client := setupTestRedis(t)
	n := NewNotifier(client)
	ctx := context.Background()

	received := make(chan string, 2)
	sub := client.Subscribe(ctx, UserChannel(7))
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	go func() {
		for msg := range sub.Channel() {
			received <- msg.Payload
		}
	}()
	t.Cleanup(func() { sub.Close() })

	require.NoError(t, n.PublishActivity(ctx, 7, EventCommentAdded, 42, 9))

	select {
	case payload := <-received:
		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		assert.Equal(t, EventCommentAdded, event.Type)
		assert.Equal(t, uint(42), event.PostID)
		assert.Equal(t, uint(9), event.ActorID)
		assert.NotEmpty(t, event.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
