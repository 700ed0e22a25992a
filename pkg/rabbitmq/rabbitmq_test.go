package rabbitmq

import (
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/models"
)

func TestEncodeEvent(t *testing.T) {
	occurred := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	event := models.InventoryEvent{
		ID:         "3f2b8c1e-0000-4000-8000-000000000001",
		Type:       models.EventAisleDeleted,
		EntityID:   4,
		Actor:      "alice",
		OccurredAt: occurred,
	}

	msg, err := EncodeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, event.ID, msg.MessageId)
	assert.Equal(t, "aisle.deleted", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, occurred, msg.Timestamp)
	assert.JSONEq(t, `{
		"id": "3f2b8c1e-0000-4000-8000-000000000001",
		"type": "aisle.deleted",
		"entity_id": 4,
		"actor": "alice",
		"occurred_at": "2026-10-18T09:30:00Z"
	}`, string(msg.Body))
}

func TestDecodeEvent_RejectsGarbage(t *testing.T) {
	_, err := DecodeEvent(amqp.Delivery{MessageId: "m-1", Body: []byte("not json")})
	assert.ErrorContains(t, err, "m-1")
}

func TestPublishInventoryEvent_WithoutChannel(t *testing.T) {
	c := &Client{}
	err := c.PublishInventoryEvent(models.InventoryEvent{Type: models.EventProductCreated})
	assert.ErrorContains(t, err, "channel is not available")
}
