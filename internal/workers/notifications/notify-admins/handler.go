// internal/workers/notifications/notify-admins/handler.go
package notifyadmins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"

	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/push"
	"fruitcenter-events/internal/models"
)

const (
	TaskType = "notify-admins"
)

// Handler fans a new order out to every admin device via the admin topic.
// The order row is re-read after a settle delay because the client writes
// the address fields in a follow-up update shortly after creating the order.
type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	dispatcher *push.Dispatcher
}

func NewHandler(config *Config, db *sql.DB, dispatcher *push.Dispatcher, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		db:         db,
		logger:     log.With(map[string]interface{}{"taskType": TaskType}),
		dispatcher: dispatcher,
	}
}

func (h *Handler) Handle(ctx context.Context, event *models.OrderCreatedEvent) push.Result {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("processing order event", map[string]interface{}{
		"orderId": event.ID,
	})

	if event.Address == nil {
		h.logger.Info("order has no address yet, skipping", map[string]interface{}{
			"orderId": event.ID,
		})
		return push.Result{Status: push.StatusSkipped, Reason: "no address"}
	}

	if h.config.SettleDelay > 0 {
		h.logger.Info("waiting for order write to settle", map[string]interface{}{
			"orderId": event.ID,
			"delayMs": h.config.SettleDelay.Milliseconds(),
		})
		select {
		case <-time.After(h.config.SettleDelay):
		case <-ctx.Done():
			return push.Result{Status: push.StatusFailed, Reason: ctx.Err().Error()}
		}
	}

	snapshot, err := h.reloadOrder(ctx, event.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.logger.Warn("order disappeared before settle re-read", map[string]interface{}{
				"orderId": event.ID,
			})
			return push.Result{Status: push.StatusSkipped, Reason: "order not found"}
		}
		h.logger.Error("order re-read failed", map[string]interface{}{
			"orderId": event.ID,
			"error":   err.Error(),
		})
		return push.Result{Status: push.StatusFailed, Reason: err.Error()}
	}

	return h.dispatcher.Dispatch(ctx, h.buildAdminMessage(event.ID, snapshot))
}

// reloadOrder fetches the current order state. NULL address columns map to
// empty strings so the message body always renders.
func (h *Handler) reloadOrder(ctx context.Context, orderID string) (*orderSnapshot, error) {
	var name, flatNo, buildingName, paymentStatus sql.NullString
	err := h.db.QueryRowContext(ctx,
		`SELECT address_name, address_flat_no, address_building_name, payment_status FROM orders WHERE id = $1`,
		orderID,
	).Scan(&name, &flatNo, &buildingName, &paymentStatus)
	if err != nil {
		return nil, err
	}

	return &orderSnapshot{
		Name:          name.String,
		FlatNo:        flatNo.String,
		BuildingName:  buildingName.String,
		PaymentStatus: paymentStatus.String,
	}, nil
}

// buildAdminMessage composes the data-only topic message. Data-only keeps the
// notification persistent and lets the app control rendering and sound.
func (h *Handler) buildAdminMessage(orderID string, snapshot *orderSnapshot) *messaging.Message {
	body := fmt.Sprintf("Order from %s, Flat: %s, Building: %s",
		snapshot.Name, snapshot.FlatNo, snapshot.BuildingName)

	status := snapshot.PaymentStatus
	if status == "" {
		status = DefaultOrderStatus
	}

	return &messaging.Message{
		Topic: h.config.AdminTopic,
		Data: map[string]string{
			"title":         AdminTitle,
			"body":          body,
			"name":          snapshot.Name,
			"flat_no":       snapshot.FlatNo,
			"building_name": snapshot.BuildingName,
			"order_id":      orderID,
			"persistent":    "true",
			"order_status":  status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{},
			},
		},
	}
}
