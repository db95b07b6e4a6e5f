package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillPublisherDeliversJSON(t *testing.T) {
	logger := discardLogger()
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NewSlogLogger(logger))
	publisher := NewWatermillPublisher(pubSub, "aps", logger)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "aps.user.registered")
	require.NoError(t, err)

	event := NewEvent(UserRegistered, "admin-service", UserRegisteredData{PrimaryID: "u-1", AccountIDs: []string{"u-1"}, Flow: "self"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, UserRegistered, msg.Metadata.Get("event_type"))

		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "1.0", got.Version)
		assert.Equal(t, "admin-service", got.Source)
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestTopicWithoutPrefix(t *testing.T) {
	p := NewWatermillPublisher(nil, "", discardLogger())
	assert.Equal(t, "reviews.synced", p.Topic(ReviewsSynced))
}

func TestNewPublisherDefaultsToChannel(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{TopicPrefix: "aps"}, discardLogger())
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.Publish(context.Background(), NewEvent(EventCreated, "admin-service", nil)))
}

func TestMockEventPublisher(t *testing.T) {
	m := NewMockEventPublisher(discardLogger())

	require.NoError(t, m.Publish(context.Background(), NewEvent(UserRegistered, "s", nil)))
	require.NoError(t, m.Publish(context.Background(), NewEvent(ReviewsSynced, "s", nil)))
	assert.Len(t, m.GetPublishedEvents(), 2)
	assert.Len(t, m.EventsOfType(ReviewsSynced), 1)

	m.ClearEvents()
	assert.Empty(t, m.GetPublishedEvents())

	boom := errors.New("broker down")
	m.FailWith(boom)
	assert.ErrorIs(t, m.Publish(context.Background(), NewEvent(UserRegistered, "s", nil)), boom)
}
