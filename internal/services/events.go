package services

import (
	"time"

	"github.com/google/uuid"

	"stockroom/internal/logger"
	"stockroom/internal/models"
)

// EventPublisher ships inventory events to other systems. Implemented by rabbitmq.Client.
type EventPublisher interface {
	PublishInventoryEvent(event models.InventoryEvent) error
}

// publishEvent is best-effort: the change is already committed, so a failed publish is only logged.
func publishEvent(log *logger.Logger, publisher EventPublisher, eventType string, entityID uint, actor string) {
	if publisher == nil {
		log.Debug("event publisher not configured, skipping", "type", eventType, "entity_id", entityID)
		return
	}
	event := models.InventoryEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.PublishInventoryEvent(event); err != nil {
		log.Warn("failed to publish inventory event", "type", eventType, "entity_id", entityID, "error", err)
	}
}

func actorOf(caller *models.Identity) string {
	if caller == nil {
		return ""
	}
	return caller.Username
}
