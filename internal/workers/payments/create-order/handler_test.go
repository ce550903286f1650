// internal/workers/payments/create-order/handler_test.go
package createorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitcenter-events/internal/common/logger"
)

type mockOrderService struct {
	createFunc func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	calls      int
	lastData   map[string]interface{}
}

func (m *mockOrderService) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	m.calls++
	m.lastData = data
	return m.createFunc(data, extraHeaders)
}

func newTestHandler(t *testing.T, mock *mockOrderService) *Handler {
	t.Helper()
	cfg := &Config{Currency: "INR"}
	return NewHandlerWithService(cfg, mock, logger.NewTestLogger(t))
}

func TestExecute_CreatesOrderWithImmediateCapture(t *testing.T) {
	mock := &mockOrderService{
		createFunc: func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
			return map[string]interface{}{
				"id":       "order_Nxy123",
				"amount":   data["amount"],
				"currency": "INR",
				"status":   "created",
			}, nil
		},
	}
	h := newTestHandler(t, mock)

	order, err := h.Execute(&CreateOrderRequest{Amount: 49900})

	require.NoError(t, err)
	assert.Equal(t, "order_Nxy123", order["id"])
	require.Equal(t, 1, mock.calls)
	assert.Equal(t, int64(49900), mock.lastData["amount"])
	assert.Equal(t, "INR", mock.lastData["currency"])
	assert.Equal(t, 1, mock.lastData["payment_capture"])
}

func TestExecute_MissingAmountRejected(t *testing.T) {
	mock := &mockOrderService{
		createFunc: func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
			t.Fatal("provider must not be called")
			return nil, nil
		},
	}
	h := newTestHandler(t, mock)

	_, err := h.Execute(&CreateOrderRequest{})

	assert.ErrorIs(t, err, ErrAmountRequired)
	assert.Equal(t, 0, mock.calls)
}

func TestExecute_ProviderErrorSurfaces(t *testing.T) {
	mock := &mockOrderService{
		createFunc: func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
			return nil, errors.New("authentication failed")
		},
	}
	h := newTestHandler(t, mock)

	_, err := h.Execute(&CreateOrderRequest{Amount: 100})

	assert.ErrorIs(t, err, ErrProviderFailed)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestExecute_ResponseWithoutOrderIDRejected(t *testing.T) {
	mock := &mockOrderService{
		createFunc: func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
			return map[string]interface{}{"status": "error"}, nil
		},
	}
	h := newTestHandler(t, mock)

	_, err := h.Execute(&CreateOrderRequest{Amount: 100})

	assert.ErrorIs(t, err, ErrProviderFailed)
}
