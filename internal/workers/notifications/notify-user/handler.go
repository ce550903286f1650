// internal/workers/notifications/notify-user/handler.go
package notifyuser

import (
	"context"
	"database/sql"
	"errors"

	"firebase.google.com/go/v4/messaging"

	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/push"
	"fruitcenter-events/internal/models"
)

const (
	TaskType = "notify-user"
)

// Handler delivers a stored notification record to the owning user's device.
// Delivery is best effort: a missing user, a missing device token, or a
// provider failure ends the handler normally.
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

func (h *Handler) Handle(ctx context.Context, event *models.NotificationCreatedEvent) push.Result {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("processing notification event", map[string]interface{}{
		"notificationId": event.ID,
		"userId":         event.UserID,
	})

	token, err := h.lookupDeviceToken(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.logger.Info("user not found, skipping", map[string]interface{}{
				"userId": event.UserID,
			})
			return push.Result{Status: push.StatusSkipped, Reason: "user not found"}
		}
		h.logger.Error("device token lookup failed", map[string]interface{}{
			"userId": event.UserID,
			"error":  err.Error(),
		})
		return push.Result{Status: push.StatusFailed, Reason: err.Error()}
	}

	if token == "" {
		h.logger.Info("no device token for user, skipping", map[string]interface{}{
			"userId": event.UserID,
		})
		return push.Result{Status: push.StatusSkipped, Reason: "no device token"}
	}

	return h.dispatcher.Dispatch(ctx, buildUserMessage(token, event))
}

func (h *Handler) lookupDeviceToken(ctx context.Context, userID string) (string, error) {
	var token sql.NullString
	err := h.db.QueryRowContext(ctx,
		`SELECT fcm_token FROM users WHERE id = $1`, userID,
	).Scan(&token)
	if err != nil {
		return "", err
	}
	return token.String, nil
}

// buildUserMessage renders the stored record into the device message. Blank
// title and body fall back to display defaults rather than failing.
func buildUserMessage(token string, event *models.NotificationCreatedEvent) *messaging.Message {
	title := event.Title
	if title == "" {
		title = DefaultTitle
	}
	body := event.Body
	if body == "" {
		body = DefaultBody
	}

	badge := 1
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:             androidChannelID,
				Sound:                 "default",
				DefaultSound:          true,
				DefaultVibrateTimings: true,
				DefaultLightSettings:  true,
				Icon:                  androidIcon,
				Color:                 androidColor,
				ClickAction:           androidClickAction,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}
}
