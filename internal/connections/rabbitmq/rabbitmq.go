package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"front-of-house/internal/config"
)

const (
	TicketsExchange = "orders.topic"        // topic: one message per placed order
	StatusExchange  = "orders.status.fanout" // fanout: every applied transition
	DLXExchange     = "orders.dlx"

	TicketsQueue = "kitchen.tickets"
	StatusQueue  = "status.notifications"
	DLQueue      = "orders.dlq"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	vhost := cfg.VHost
	if vhost == "" {
		vhost = "/"
	}
	url := fmt.Sprintf("amqp://%s:%s@%s:%d%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, vhost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Channel() *amqp.Channel { return c.ch }

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareTopology declares all exchanges, queues and bindings. Declarations
// are idempotent so every run mode calls this on startup.
func (c *Client) DeclareTopology() error {
	if err := c.ch.ExchangeDeclare(TicketsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", TicketsExchange, err)
	}
	if err := c.ch.ExchangeDeclare(StatusExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", StatusExchange, err)
	}
	if err := c.ch.ExchangeDeclare(DLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLXExchange, err)
	}

	if _, err := c.ch.QueueDeclare(TicketsQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DLXExchange,
		"x-dead-letter-routing-key": DLQueue,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", TicketsQueue, err)
	}
	if _, err := c.ch.QueueDeclare(StatusQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", StatusQueue, err)
	}
	if _, err := c.ch.QueueDeclare(DLQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLQueue, err)
	}

	if err := c.ch.QueueBind(TicketsQueue, "kitchen.ticket.*", TicketsExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", TicketsQueue, err)
	}
	if err := c.ch.QueueBind(StatusQueue, "", StatusExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", StatusQueue, err)
	}
	if err := c.ch.QueueBind(DLQueue, DLQueue, DLXExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", DLQueue, err)
	}
	return nil
}

func (c *Client) PublishPersistent(ctx context.Context, exchange, key string, body []byte) error {
	return c.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return fmt.Errorf("amqp connection closed")
	}
	return nil
}
