package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/metrics"
)

func waitForEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case evt := <-client.EventChannel:
		return evt
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	all := hub.Register(nil)
	undoOnly := hub.Register([]string{string(event.UndoPerformed)})

	hub.Broadcast(string(event.RecipeSaved), map[string]string{"recipe_id": "r1"})

	evt := waitForEvent(t, all)
	assert.Equal(t, string(event.RecipeSaved), evt.Type)
	assert.NotEmpty(t, evt.ID)

	// The filtered client must not see recipe events.
	select {
	case evt := <-undoOnly.EventChannel:
		t.Fatalf("filtered client received %s", evt.Type)
	case <-time.After(100 * time.Millisecond):
	}

	hub.Broadcast(string(event.UndoPerformed), nil)
	evt = waitForEvent(t, undoOnly)
	assert.Equal(t, string(event.UndoPerformed), evt.Type)
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register(nil)
	hub.Unregister(client.ID)

	select {
	case _, open := <-client.EventChannel:
		assert.False(t, open, "channel should be closed after unregister")
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for channel close")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_ClientGaugeTracksConnections(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	before := testutil.ToFloat64(metrics.StreamClients)

	client := hub.Register(nil)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.StreamClients) == before+1
	}, time.Second, 10*time.Millisecond, "gauge should rise on register")

	hub.Unregister(client.ID)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.StreamClients) == before
	}, time.Second, 10*time.Millisecond, "gauge should fall on unregister")
}

func TestSubscriber_ForwardsDomainEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	client := hub.Register(nil)

	payload := event.RecipeSavedPayloadV1{RecipeID: "r1", Title: "Brownies", Folder: "Baking"}
	err := bus.Publish(context.Background(), event.Event{
		Version: "1.0",
		Type:    event.RecipeSaved,
		Payload: payload,
	})
	require.NoError(t, err)

	evt := waitForEvent(t, client)
	assert.Equal(t, string(event.RecipeSaved), evt.Type)
	assert.Equal(t, payload, evt.Payload)
}

func TestFormatMessage(t *testing.T) {
	msg, err := FormatMessage(Event{ID: "abc", Type: "recipe.saved", Timestamp: 42})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: abc\n"))
	assert.Contains(t, text, "event: recipe.saved\n")
	assert.Contains(t, text, "data: ")
	assert.True(t, strings.HasSuffix(text, "\n\n"))
}

func TestHandler_SendsConnectedEvent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events?types=recipe.saved", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		Handler(hub)(rec, req)
		close(done)
	}()

	// Give the handler time to register and write the opening frame, then
	// disconnect the client.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after disconnect")
	}

	body := rec.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "recipe.saved")
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond, "client should be unregistered")
}
