package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the topic exchange events are mirrored to.
const Exchange = "travelbuddy.events"

// amqpChannel is the part of *amqp.Channel the sink publishes through.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type amqpDialer func(url string) (io.Closer, amqpChannel, error)

// AMQPSink publishes events to a RabbitMQ topic exchange. A channel or
// connection closed by the broker is redialled on the next Send.
type AMQPSink struct {
	url  string
	dial amqpDialer

	mu   sync.Mutex
	conn io.Closer
	ch   amqpChannel
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url string) (*AMQPSink, error) {
	return newAMQPSink(url, dialExchange)
}

func newAMQPSink(url string, dial amqpDialer) (*AMQPSink, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to RabbitMQ")
	return &AMQPSink{url: url, dial: dial, conn: conn, ch: ch}, nil
}

func dialExchange(url string) (io.Closer, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", Exchange, err)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if reason := <-closed; reason != nil {
			log.Printf("RabbitMQ connection closed: %v", reason)
		}
	}()

	return conn, ch, nil
}

// RoutingKey is "{type}.{category}", or just the type for session events.
func RoutingKey(e Event) string {
	if e.Category == "" {
		return string(e.Type)
	}
	return string(e.Type) + "." + string(e.Category)
}

func (s *AMQPSink) Send(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil || s.ch.IsClosed() {
		if err := s.redial(); err != nil {
			return err
		}
	}

	err = s.ch.PublishWithContext(ctx,
		Exchange,      // exchange
		RoutingKey(e), // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    e.At,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		s.drop()
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// redial replaces the connection and channel. Callers hold mu.
func (s *AMQPSink) redial() error {
	s.drop()
	conn, ch, err := s.dial(s.url)
	if err != nil {
		return err
	}
	s.conn, s.ch = conn, ch
	log.Println("Reconnected to RabbitMQ")
	return nil
}

// drop closes whatever is left of the current connection. Callers hold mu.
func (s *AMQPSink) drop() {
	if s.ch != nil {
		s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// Close closes the channel and the connection.
func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil {
		s.ch.Close()
		s.ch = nil
	}
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
