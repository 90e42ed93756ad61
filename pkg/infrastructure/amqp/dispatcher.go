package amqp

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultExchange = "storefront.events"
	publishTimeout  = 5 * time.Second
	connectTimeout  = time.Minute
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dispatcher publishes events to a fanout exchange. The routing key is the
// event type.
type Dispatcher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	channel  publisher
	exchange string
}

func NewDispatcher(ctx context.Context, url, exchange string) (*Dispatcher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	var conn *amqp.Connection
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout
	err := backoff.RetryNotify(func() error {
		var err error
		conn, err = amqp.Dial(url)
		return err
	}, backoff.WithContext(policy, ctx), func(err error, next time.Duration) {
		log.WithError(err).WithField("retryIn", next).Warn("rabbitmq is not ready")
	})
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}
	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "declare exchange")
	}

	return &Dispatcher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (d *Dispatcher) Dispatch(event domain.Event) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	err = d.channel.PublishWithContext(ctx, d.exchange, event.Type(), false, false, msg)
	return errors.Wrapf(err, "publish %s", event.Type())
}

func newPublishing(event domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, errors.Wrap(err, "encode event")
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type(),
		Body:         body,
	}, nil
}

func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.channel.Close(); err != nil {
		log.WithError(err).Warn("close rabbitmq channel")
	}
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}
