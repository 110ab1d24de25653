package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered, UserID: 1, Email: "alice@example.com"})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, int64(1), received[0].UserID)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventUserDeleted, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserSignedIn, UserID: 1}))
	assert.False(t, called)
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventUserUpdated, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserUpdated, func(_ context.Context, _ Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserUpdated, UserID: 1}))
	assert.True(t, second)
}
