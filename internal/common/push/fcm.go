// internal/common/push/fcm.go
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"fruitcenter-events/internal/common/config"
)

// MessagingService is the provider surface the dispatcher depends on,
// defined here for mocking.
type MessagingService interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NewMessagingClient builds the process-wide FCM messaging client.
func NewMessagingClient(ctx context.Context, cfg config.PushConfig) (MessagingService, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	return client, nil
}
