// internal/common/push/dispatcher_test.go
package push

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"

	"fruitcenter-events/internal/common/logger"
)

type MockMessagingService struct {
	SendFunc func(ctx context.Context, message *messaging.Message) (string, error)
	Calls    int
}

func (m *MockMessagingService) Send(ctx context.Context, message *messaging.Message) (string, error) {
	m.Calls++
	return m.SendFunc(ctx, message)
}

func TestDispatcher_Dispatch_Delivered(t *testing.T) {
	mock := &MockMessagingService{
		SendFunc: func(ctx context.Context, message *messaging.Message) (string, error) {
			assert.Equal(t, "device-token-1", message.Token)
			return "projects/fruit-center/messages/abc123", nil
		},
	}

	d := NewDispatcher(mock, logger.NewTestLogger(t))
	result := d.Dispatch(context.Background(), &messaging.Message{Token: "device-token-1"})

	assert.Equal(t, StatusDelivered, result.Status)
	assert.Equal(t, "projects/fruit-center/messages/abc123", result.MessageID)
	assert.Equal(t, 1, mock.Calls)
}

func TestDispatcher_Dispatch_TopicTarget(t *testing.T) {
	mock := &MockMessagingService{
		SendFunc: func(ctx context.Context, message *messaging.Message) (string, error) {
			assert.Equal(t, "admin_orders", message.Topic)
			return "msg-id", nil
		},
	}

	d := NewDispatcher(mock, logger.NewTestLogger(t))
	result := d.Dispatch(context.Background(), &messaging.Message{Topic: "admin_orders"})

	assert.Equal(t, StatusDelivered, result.Status)
}

func TestDispatcher_Dispatch_EmptyTargetSkipped(t *testing.T) {
	mock := &MockMessagingService{
		SendFunc: func(ctx context.Context, message *messaging.Message) (string, error) {
			t.Fatal("provider must not be called for a message without a target")
			return "", nil
		},
	}

	d := NewDispatcher(mock, logger.NewTestLogger(t))
	result := d.Dispatch(context.Background(), &messaging.Message{})

	assert.Equal(t, StatusSkipped, result.Status)
	assert.Equal(t, "empty target", result.Reason)
	assert.Equal(t, 0, mock.Calls)
}

func TestDispatcher_Dispatch_ProviderFailureSwallowed(t *testing.T) {
	mock := &MockMessagingService{
		SendFunc: func(ctx context.Context, message *messaging.Message) (string, error) {
			return "", errors.New("registration-token-not-registered")
		},
	}

	d := NewDispatcher(mock, logger.NewTestLogger(t))
	result := d.Dispatch(context.Background(), &messaging.Message{Token: "stale-token"})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Reason, "registration-token-not-registered")
	// Exactly one attempt, no retry.
	assert.Equal(t, 1, mock.Calls)
}
