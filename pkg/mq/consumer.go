package mq

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultMaxRetryDelay = 30 * time.Second
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch      *amqp.Channel
	backoff *Backoff
}

func NewRabbitConsumer(ch *amqp.Channel, backoff *Backoff) Consumer {
	if backoff == nil {
		backoff = NewBackoff(DefaultRetryDelay, DefaultMaxRetryDelay)
	}
	return &RabbitConsumer{ch: ch, backoff: backoff}
}

// Consume blocks until ctx is cancelled or the delivery channel closes.
// Handler errors marked Temporary are requeued after a backoff, everything
// else is dropped.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Close()
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			handleDelivery(ctx, d, handler, c.backoff)
		}
	}
}

// handleDelivery acks on success. A temporary failure waits out the backoff
// before the requeue so a broken dependency is not hammered with redeliveries.
func handleDelivery(ctx context.Context, d amqp.Delivery, handler Handle, backoff *Backoff) {
	err := handler(ctx, d.Body)
	if err == nil {
		backoff.Reset()
		_ = d.Ack(false)
		return
	}

	if !ShouldRequeue(err) {
		_ = d.Nack(false, false)
		return
	}

	timer := time.NewTimer(backoff.Next())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	_ = d.Nack(false, true)
}

func ShouldRequeue(err error) bool {
	var te TempError
	return errors.As(err, &te) && te.Temporary()
}

// Backoff doubles the retry delay on every consecutive temporary failure, up
// to maxDelay. It is only used from the consume loop goroutine.
type Backoff struct {
	base     time.Duration
	maxDelay time.Duration
	failures int
}

func NewBackoff(base, maxDelay time.Duration) *Backoff {
	if base <= 0 {
		base = DefaultRetryDelay
	}
	if maxDelay < base {
		maxDelay = base
	}
	return &Backoff{base: base, maxDelay: maxDelay}
}

func (b *Backoff) Next() time.Duration {
	delay := b.base
	for i := 0; i < b.failures && delay < b.maxDelay; i++ {
		delay *= 2
	}
	if delay > b.maxDelay {
		delay = b.maxDelay
	}

	b.failures++
	return delay
}

func (b *Backoff) Reset() {
	b.failures = 0
}
