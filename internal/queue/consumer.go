package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const maxBackoff = 30 * time.Second

// Consumer reads reservation events from the broker and appends each one
// to LogPath as a single human-friendly line.
type Consumer struct {
	URL     string
	Queue   string
	LogPath string
	Logger  *zap.Logger
}

// NewConsumer returns a Consumer.  A nil logger is replaced by a no-op one.
func NewConsumer(url, queue, logPath string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{URL: url, Queue: queue, LogPath: logPath, Logger: logger}
}

// Run connects to the broker, declares the queue and consumes until ctx is
// cancelled.  Connection failures are retried with exponential backoff
// (1s doubling up to 30s); a broken consume loop reconnects after two
// seconds.  Messages that cannot be handled are rejected without requeue
// so that one bad payload cannot stall the queue.  Run only returns once
// ctx is done, with ctx.Err().
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Logger.Warn("failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warn("consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Logger.Warn("set QoS failed", zap.Error(err))
	}
	if err := declareQueue(ch, c.Queue); err != nil {
		return err
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.Logger.Info("consuming reservation events", zap.String("queue", c.Queue), zap.String("log_path", c.LogPath))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.Logger.Error("handle message failed", zap.Error(err), zap.String("message_id", d.MessageId))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends it to the log file, creating
// the file and its directory when needed.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.ReservationID == 0 {
		return fmt.Errorf("incomplete event %q", ev.EventID)
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	c.Logger.Debug("event recorded", zap.String("event_id", ev.EventID), zap.String("type", string(ev.Type)))
	return nil
}

// FormatLine renders ev as one newline-terminated log line.
func FormatLine(ev ReservationEvent) string {
	return fmt.Sprintf("[%s] %s | event_id=%s | restaurant=%q | reservation_id=%d | name=%q | slot=%d:00 | payment=%q\n",
		ev.OccurredAt, ev.Type, ev.EventID, ev.Restaurant, ev.ReservationID, ev.FullName, ev.Slot, ev.PaymentMethod)
}

// sleep waits for d or until ctx is done; it reports false in the latter
// case.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
