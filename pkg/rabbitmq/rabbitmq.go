package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"stockroom/internal/logger"
	"stockroom/internal/models"
)

// InventoryQueue is the durable queue inventory events are published to.
const InventoryQueue = "inventory_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
	log     *logger.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the inventory queue.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareInventoryQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	clientLog := log.With("component", "rabbitmq")
	clientLog.Info("RabbitMQ client connected", "queue", InventoryQueue)

	return &Client{
		conn:    conn,
		channel: ch,
		log:     clientLog,
	}, nil
}

func declareInventoryQueue(ch *amqp.Channel) (amqp.Queue, error) {
	queue, err := ch.QueueDeclare(
		InventoryQueue, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", InventoryQueue, err)
	}
	return queue, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeEvent builds the persistent JSON message for an inventory event.
func EncodeEvent(event models.InventoryEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal inventory event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}

// DecodeEvent is the inverse of EncodeEvent.
func DecodeEvent(msg amqp.Delivery) (models.InventoryEvent, error) {
	var event models.InventoryEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return models.InventoryEvent{}, fmt.Errorf("failed to decode inventory event %s: %w", msg.MessageId, err)
	}
	return event, nil
}

// PublishInventoryEvent publishes the event to the inventory queue through the default exchange.
func (c *Client) PublishInventoryEvent(event models.InventoryEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",             // exchange: default exchange
		InventoryQueue, // routing key: the queue name
		false,          // mandatory
		false,          // immediate
		msg,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug("sent inventory event", "type", event.Type, "entity_id", event.EntityID)
	return nil
}

// ConsumeInventoryEvents delivers every message on the inventory queue to handler.
// Messages the handler fails on are nacked without requeue so a poison message cannot loop.
func (c *Client) ConsumeInventoryEvents(handler func(event models.InventoryEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareInventoryQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("waiting for inventory events", "queue", queue.Name)

	go func() {
		for msg := range msgs {
			event, err := DecodeEvent(msg)
			if err == nil {
				err = handler(event)
			}
			if err != nil {
				c.log.Error("error processing message", "delivery_tag", msg.DeliveryTag, "error", err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.log.Error("error nacking message", "delivery_tag", msg.DeliveryTag, "error", nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error("error acking message", "delivery_tag", msg.DeliveryTag, "error", ackErr)
			}
		}
	}()

	return nil
}
