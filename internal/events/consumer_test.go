// internal/events/consumer_test.go
package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitcenter-events/internal/common/config"
	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/push"
	"fruitcenter-events/internal/models"
)

type fakeOrderHandler struct {
	mu     sync.Mutex
	events []*models.OrderCreatedEvent
}

func (f *fakeOrderHandler) Handle(ctx context.Context, event *models.OrderCreatedEvent) push.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return push.Result{Status: push.StatusDelivered}
}

func (f *fakeOrderHandler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeNotificationHandler struct {
	mu     sync.Mutex
	events []*models.NotificationCreatedEvent
}

func (f *fakeNotificationHandler) Handle(ctx context.Context, event *models.NotificationCreatedEvent) push.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return push.Result{Status: push.StatusDelivered}
}

func (f *fakeNotificationHandler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func startConsumer(t *testing.T) (*redis.Client, *fakeOrderHandler, *fakeNotificationHandler) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.EventsConfig{
		OrderChannel:        "events:orders.created",
		NotificationChannel: "events:notifications.created",
	}
	orders := &fakeOrderHandler{}
	notifications := &fakeNotificationHandler{}

	consumer := NewConsumer(client, cfg, orders, notifications, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("consumer did not stop")
		}
	})

	// Give the subscription a moment to land before tests publish.
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(context.Background(), cfg.OrderChannel).Result()
		return err == nil && n[cfg.OrderChannel] > 0
	}, 2*time.Second, 10*time.Millisecond)

	return client, orders, notifications
}

func TestConsumer_RoutesOrderEvents(t *testing.T) {
	client, orders, notifications := startConsumer(t)

	payload := `{"id":"ord-1","payment_status":"paid","address":{"name":"Asha","flatNo":"12","buildingName":"Sunrise"}}`
	require.NoError(t, client.Publish(context.Background(), "events:orders.created", payload).Err())

	assert.Eventually(t, func() bool { return orders.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, notifications.count())

	event := orders.events[0]
	assert.Equal(t, "ord-1", event.ID)
	assert.Equal(t, "paid", event.PaymentStatus)
	require.NotNil(t, event.Address)
	assert.Equal(t, "Asha", event.Address.Name)
}

func TestConsumer_RoutesNotificationEvents(t *testing.T) {
	client, orders, notifications := startConsumer(t)

	payload := `{"id":"ntf-1","user_id":"user-1","title":"Hi","body":"there"}`
	require.NoError(t, client.Publish(context.Background(), "events:notifications.created", payload).Err())

	assert.Eventually(t, func() bool { return notifications.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, orders.count())
	assert.Equal(t, "user-1", notifications.events[0].UserID)
}

func TestConsumer_DropsInvalidPayloads(t *testing.T) {
	client, orders, notifications := startConsumer(t)

	ctx := context.Background()
	require.NoError(t, client.Publish(ctx, "events:orders.created", `{"address":{}}`).Err())
	require.NoError(t, client.Publish(ctx, "events:notifications.created", `not json`).Err())
	require.NoError(t, client.Publish(ctx, "events:orders.created", `{"id":"ord-2"}`).Err())

	assert.Eventually(t, func() bool { return orders.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ord-2", orders.events[0].ID)
	assert.Equal(t, 0, notifications.count())
}

func TestConsumer_HandlesEventsConcurrently(t *testing.T) {
	client, orders, _ := startConsumer(t)

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, client.Publish(ctx, "events:orders.created", `{"id":"`+id+`"}`).Err())
	}

	assert.Eventually(t, func() bool { return orders.count() == 5 }, 2*time.Second, 10*time.Millisecond)
}
