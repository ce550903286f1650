// internal/events/consumer.go

// Package events consumes store-write events from the bus and fans them out
// to the notification handlers.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fruitcenter-events/internal/common/config"
	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/metrics"
	"fruitcenter-events/internal/common/push"
	"fruitcenter-events/internal/common/validation"
	"fruitcenter-events/internal/models"
)

// Handler interfaces for the two event streams, defined here for mocking.
type OrderHandler interface {
	Handle(ctx context.Context, event *models.OrderCreatedEvent) push.Result
}

type NotificationHandler interface {
	Handle(ctx context.Context, event *models.NotificationCreatedEvent) push.Result
}

// Consumer subscribes to the order and notification channels and runs one
// goroutine per received event. Redelivery is possible after reconnects, so
// handlers must tolerate seeing the same event twice.
type Consumer struct {
	client        *redis.Client
	config        config.EventsConfig
	logger        logger.Logger
	orders        OrderHandler
	notifications NotificationHandler

	channelTypes map[string]string
	wg           sync.WaitGroup
}

func NewConsumer(client *redis.Client, cfg config.EventsConfig, orders OrderHandler, notifications NotificationHandler, log logger.Logger) *Consumer {
	return &Consumer{
		client:        client,
		config:        cfg,
		logger:        log.With(map[string]interface{}{"component": "event-consumer"}),
		orders:        orders,
		notifications: notifications,
		channelTypes: map[string]string{
			cfg.OrderChannel:        models.EventOrderCreated,
			cfg.NotificationChannel: models.EventNotificationCreated,
		},
	}
}

// Run blocks until ctx is cancelled, then waits for in-flight handlers.
func (c *Consumer) Run(ctx context.Context) error {
	pubsub := c.client.Subscribe(ctx, c.config.OrderChannel, c.config.NotificationChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	c.logger.Info("subscribed to event channels", map[string]interface{}{
		"channels": []string{c.config.OrderChannel, c.config.NotificationChannel},
	})

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.wg.Wait()
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				c.wg.Wait()
				return nil
			}
			c.handleMessage(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, channel string, payload []byte) {
	eventType, ok := c.channelTypes[channel]
	if !ok {
		c.logger.Warn("message on unexpected channel", map[string]interface{}{
			"channel": channel,
		})
		return
	}

	metrics.EventsConsumedTotal.WithLabelValues(eventType).Inc()

	if err := validation.ValidateEvent(eventType, payload); err != nil {
		stdErr := commonerrors.NewEventPayloadInvalidError(eventType, err)
		c.logger.Warn("dropping invalid event payload", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
		return
	}

	// Delivery id correlates handler log lines for one bus message; the bus
	// may redeliver the same event under a fresh id.
	deliveryID := uuid.New().String()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.dispatch(ctx, deliveryID, eventType, payload)
	}()
}

func (c *Consumer) dispatch(ctx context.Context, deliveryID, eventType string, payload []byte) {
	switch eventType {
	case models.EventOrderCreated:
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			c.logger.Error("unmarshal order event", map[string]interface{}{"error": err.Error()})
			return
		}
		result := c.orders.Handle(ctx, &event)
		c.logResult(deliveryID, eventType, event.ID, result)

	case models.EventNotificationCreated:
		var event models.NotificationCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			c.logger.Error("unmarshal notification event", map[string]interface{}{"error": err.Error()})
			return
		}
		result := c.notifications.Handle(ctx, &event)
		c.logResult(deliveryID, eventType, event.ID, result)
	}
}

func (c *Consumer) logResult(deliveryID, eventType, id string, result push.Result) {
	c.logger.Info("event handled", map[string]interface{}{
		"deliveryId": deliveryID,
		"eventType":  eventType,
		"id":         id,
		"status":     result.Status,
		"reason":     result.Reason,
	})
}
