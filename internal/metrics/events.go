package metrics

import (
	"context"

	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
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

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RecipeSaved:
		payload, err := event.DecodePayload[event.RecipeSavedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type, "error", err)
			return nil
		}
		RecipesSaved.WithLabelValues(payload.Source).Inc()

	case event.RecipeDeleted, event.RecipePurged:
		payload, err := event.DecodePayload[event.RecipeDeletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type, "error", err)
			return nil
		}
		RecipesDeleted.WithLabelValues(payload.Mode).Add(float64(payload.Count))

	case event.RecipeRestored:
		RecipesRestored.Inc()

	case event.GroceryItemsAdded:
		payload, err := event.DecodePayload[event.GroceryItemsAddedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type, "error", err)
			return nil
		}
		GroceryItemsAdded.Add(float64(payload.Count))

	case event.UndoPerformed:
		UndoPerformed.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
