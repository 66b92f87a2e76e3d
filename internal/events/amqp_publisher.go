package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher forwards dispatched events to a RabbitMQ topic exchange.
// The routing key is the event type.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *zap.Logger
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	logger.Info("amqp publisher ready", zap.String("exchange", exchange))
	return &AMQPPublisher{conn: conn, exchange: exchange, logger: logger}, nil
}

// Register subscribes the publisher to every event type on the dispatcher.
func (p *AMQPPublisher) Register(dispatcher Dispatcher) {
	if p == nil || dispatcher == nil {
		return
	}
	SubscribeAll(dispatcher, p.Handle)
}

// Handle publishes one event as a persistent JSON message.
func (p *AMQPPublisher) Handle(ctx context.Context, event Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
	return nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Close(); err != nil {
		p.logger.Warn("amqp close", zap.Error(err))
	}
}

func encodeEvent(event Event) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	return body, nil
}
