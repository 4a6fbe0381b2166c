package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }

var ErrPublisherClosed = errors.New("publisher closed")

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a connection and a channel with the queue declared. conn may
// be nil in tests.
type dialFunc func(url, queue string) (*amqp.Connection, amqpChannel, error)

// AMQPPublisher sends events as persistent JSON messages to a durable queue
// on the default exchange. A lost broker connection is logged when it drops
// and redialed on the next publish.
type AMQPPublisher struct {
	mu     sync.Mutex
	url    string
	queue  string
	dial   dialFunc
	conn   *amqp.Connection
	ch     amqpChannel
	closed bool
	logger zerolog.Logger
}

func NewAMQPPublisher(url, queue string, logger zerolog.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		url:    url,
		queue:  queue,
		dial:   dialAMQP,
		logger: logger,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialAMQP(url, queue string) (*amqp.Connection, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dial broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errors.Wrap(err, "open channel")
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errors.Wrap(err, "declare queue")
	}

	return conn, ch, nil
}

func (p *AMQPPublisher) connectLocked() error {
	conn, ch, err := p.dial(p.url, p.queue)
	if err != nil {
		return err
	}
	p.conn = conn
	p.ch = ch

	if conn != nil {
		go p.watch(conn.NotifyClose(make(chan *amqp.Error, 1)), ch)
	}
	return nil
}

// watch drops the channel once its connection closes so the next publish
// redials.
func (p *AMQPPublisher) watch(closed <-chan *amqp.Error, ch amqpChannel) {
	amqpErr, ok := <-closed
	if ok && amqpErr != nil {
		p.logger.Error().
			Int("code", amqpErr.Code).
			Str("reason", amqpErr.Reason).
			Msg("broker connection lost, will reconnect on next publish")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == ch {
		p.conn = nil
		p.ch = nil
	}
}

// resetLocked discards the current channel and connection.
func (p *AMQPPublisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn = nil
	p.ch = nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if p.ch == nil {
		if err := p.connectLocked(); err != nil {
			return errors.Wrap(err, "reconnect broker")
		}
		p.logger.Info().Str("queue", p.queue).Msg("reconnected to broker")
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.resetLocked()
		return errors.Wrapf(err, "publish %s", ev.Type)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.ch == nil {
		return nil
	}

	chErr := p.ch.Close()
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	p.conn = nil
	p.ch = nil
	return chErr
}
