package sse

import (
	"context"

	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// streamedTypes lists every domain event forwarded onto the stream.
var streamedTypes = []event.Type{
	event.RecipeSaved,
	event.RecipeDeleted,
	event.RecipeRestored,
	event.RecipePurged,
	event.FolderCreated,
	event.FolderRenamed,
	event.FolderDeleted,
	event.GroceryItemsAdded,
	event.GroceryCleared,
	event.UndoPerformed,
	event.UndoVisibility,
}

// Subscriber bridges the internal event bus to the SSE hub. Payloads are
// forwarded as-is; the stores already publish typed, JSON-ready payloads.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a subscriber for the given hub and bus.
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every streamed event type.
func (s *Subscriber) Subscribe() {
	for _, t := range streamedTypes {
		s.bus.Subscribe(t, s.forward)
	}
	logger.Info(LogMsgSubscriberBridged, "types", len(streamedTypes))
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	return nil
}
