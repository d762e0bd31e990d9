package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"front-of-house/internal/connections/rabbitmq"
	"front-of-house/internal/domain"
)

// Publisher pushes order lifecycle messages onto the broker. Services
// depend on the narrow interfaces below so tests can swap in fakes.
type Publisher struct {
	mq *rabbitmq.Client
}

func NewPublisher(mq *rabbitmq.Client) *Publisher { return &Publisher{mq: mq} }

// PublishTicket routes a placed order to the kitchen by table, e.g.
// kitchen.ticket.T3.
func (p *Publisher) PublishTicket(ctx context.Context, t domain.TicketMessage) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	key := "kitchen.ticket." + routableTable(t.Table)
	return p.mq.PublishPersistent(ctx, rabbitmq.TicketsExchange, key, body)
}

func (p *Publisher) PublishStatusChange(ctx context.Context, m domain.StatusChangeMessage) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}
	return p.mq.PublishPersistent(ctx, rabbitmq.StatusExchange, "", body)
}

// routableTable strips characters AMQP routing keys treat as separators.
func routableTable(table string) string {
	table = strings.ReplaceAll(table, ".", "_")
	table = strings.ReplaceAll(table, " ", "_")
	if table == "" {
		return "unknown"
	}
	return table
}
