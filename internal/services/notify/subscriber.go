package notify

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"front-of-house/internal/common/logger"
	"front-of-house/internal/connections/rabbitmq"
	"front-of-house/internal/domain"
)

// Subscriber tails the status fanout queue and logs every transition.
// This is the feed an expediter screen or pager integration would hang
// off; for now logging is the integration.
type Subscriber struct {
	mq  *rabbitmq.Client
	log *logger.Logger
}

func NewSubscriber(mq *rabbitmq.Client, log *logger.Logger) *Subscriber {
	return &Subscriber{mq: mq, log: log}
}

func (s *Subscriber) Run(ctx context.Context) error {
	deliveries, err := s.mq.Consume(rabbitmq.StatusQueue, "notification-subscriber", 1)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, open := <-deliveries:
			if !open {
				return nil
			}
			s.handle(d)
		}
	}
}

func (s *Subscriber) handle(d amqp.Delivery) {
	var msg domain.StatusChangeMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// Unparseable payloads are not worth redelivering.
		s.log.Error("bad_status_message", err, nil)
		_ = d.Nack(false, false)
		return
	}

	s.log.Info("order_status_changed", map[string]any{
		"order_id":   msg.OrderID,
		"old_status": msg.OldStatus,
		"new_status": msg.NewStatus,
		"changed_by": msg.ChangedBy,
	})
	_ = d.Ack(false)
}
