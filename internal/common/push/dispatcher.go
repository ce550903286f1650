// internal/common/push/dispatcher.go
package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/metrics"
)

// Dispatch result statuses.
const (
	StatusDelivered = "delivered"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Result reports the outcome of a single dispatch attempt. Failures are
// carried in the result, never as an error: the event pipeline must complete
// normally regardless of delivery outcome.
type Result struct {
	Status    string
	Reason    string
	MessageID string
}

// Dispatcher sends composed messages through the push provider with
// at-most-one delivery attempt per message.
type Dispatcher struct {
	client MessagingService
	logger logger.Logger
}

func NewDispatcher(client MessagingService, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		logger: log.With(map[string]interface{}{"component": "push-dispatcher"}),
	}
}

// Dispatch sends one message. Every message must already carry a recipient
// target; the dispatcher never fabricates one.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *messaging.Message) Result {
	target := messageTarget(msg)
	if target == "" {
		d.logger.Warn("dispatch skipped: message has no target", nil)
		metrics.PushDispatchTotal.WithLabelValues(StatusSkipped).Inc()
		return Result{Status: StatusSkipped, Reason: "empty target"}
	}

	id, err := d.client.Send(ctx, msg)
	if err != nil {
		stdErr := commonerrors.NewPushSendFailedError(target, err)
		d.logger.WithError(stdErr).Error("push send failed", map[string]interface{}{
			"code":   string(stdErr.Code),
			"target": target,
		})
		metrics.PushDispatchTotal.WithLabelValues(StatusFailed).Inc()
		return Result{Status: StatusFailed, Reason: err.Error()}
	}

	d.logger.Info("push sent", map[string]interface{}{
		"target":    target,
		"messageId": id,
	})
	metrics.PushDispatchTotal.WithLabelValues(StatusDelivered).Inc()
	return Result{Status: StatusDelivered, MessageID: id}
}

func messageTarget(msg *messaging.Message) string {
	switch {
	case msg == nil:
		return ""
	case msg.Token != "":
		return "token:" + msg.Token
	case msg.Topic != "":
		return "topic:" + msg.Topic
	default:
		return ""
	}
}
