// internal/workers/payments/create-order/handler.go
package createorder

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
)

const (
	TaskType = "create-order"
)

var (
	ErrAmountRequired = errors.New("AMOUNT_REQUIRED")
	ErrProviderFailed = errors.New("PAYMENT_ORDER_FAILED")
)

// OrderService is the payment provider surface, defined here for mocking.
type OrderService interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Handler creates provider-side payment orders ahead of checkout.
type Handler struct {
	config *Config
	orders OrderService
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	client := razorpay.NewClient(config.KeyID, config.KeySecret)
	return NewHandlerWithService(config, client.Order, log)
}

func NewHandlerWithService(config *Config, orders OrderService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		orders: orders,
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute creates one payment order with immediate capture. The raw provider
// response is returned so the client can hand it straight to the checkout SDK.
func (h *Handler) Execute(input *CreateOrderRequest) (map[string]interface{}, error) {
	if input.Amount <= 0 {
		return nil, ErrAmountRequired
	}

	order, err := h.orders.Create(map[string]interface{}{
		"amount":          input.Amount,
		"currency":        h.config.Currency,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		stdErr := commonerrors.NewPaymentOrderFailedError(err)
		h.logger.Error("payment order creation failed", map[string]interface{}{
			"code":   string(stdErr.Code),
			"amount": input.Amount,
			"error":  stdErr.Details,
		})
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	if order == nil || order["id"] == nil || order["id"] == "" {
		h.logger.Error("payment provider returned no order id", map[string]interface{}{
			"amount": input.Amount,
		})
		return nil, fmt.Errorf("%w: provider returned no order id", ErrProviderFailed)
	}

	h.logger.Info("payment order created", map[string]interface{}{
		"orderId": order["id"],
		"amount":  input.Amount,
	})
	return order, nil
}
