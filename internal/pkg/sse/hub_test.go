package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishDeliversToSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "overtime_decision", Data: map[string]bool{"approved": true}})

	select {
	case event := <-ch:
		assert.Equal(t, "overtime_decision", event.Event)
		assert.Equal(t, "user-1", event.UserID)
	case <-time.After(time.Second):
		t.Fatal("expected event was not delivered")
	}
}

func TestHubPublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "payslip_released"})

	select {
	case event := <-ch:
		t.Fatalf("unexpected event delivered: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: "payslip_released"})

	for userID, ch := range map[string]chan Event{"user-1": ch1, "user-2": ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, "payslip_released", event.Event)
			assert.Equal(t, userID, event.UserID)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive the event", userID)
		}
	}
}

func TestHubMultipleSubscribersSameUser(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup2()

	require.Equal(t, 2, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{UserID: "user-1", Event: "overtime_decision"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, "overtime_decision", event.Event)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// Publishing after cleanup must not panic on the closed channel.
	hub.Publish("user-1", Event{UserID: "user-1", Event: "overtime_decision"})
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish("user-1", Event{UserID: "user-1", Event: "overtime_decision"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}
}
