package queue

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer reads booking events from the queue and appends one line per
// event to an audit log file.
type Consumer struct {
    URL     string
    Queue   string
    LogPath string
}

// NewConsumer returns a Consumer for the broker at url writing to
// logPath.  Empty values select DefaultQueueName and logs/booking.log.
func NewConsumer(url, queue, logPath string) *Consumer {
    if queue == "" {
        queue = DefaultQueueName
    }
    if logPath == "" {
        logPath = filepath.Join("logs", "booking.log")
    }
    return &Consumer{URL: url, Queue: queue, LogPath: logPath}
}

// Run connects to the broker and consumes until ctx is cancelled.  It
// reconnects with exponential backoff (capped at 30s) whenever the dial
// fails or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

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

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.handleMessage(d.Body); err != nil {
                requeue := !errors.Is(err, ErrMalformedEvent)
                log.Printf("booking-consumer: handle message failed (requeue=%t): %v", requeue, err)
                _ = d.Nack(false, requeue)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// handleMessage formats the line before touching the file, so a malformed
// body is reported as ErrMalformedEvent even when the log is unwritable.
func (c *Consumer) handleMessage(body []byte) error {
    var line bytes.Buffer
    if err := WriteAuditLine(&line, body); err != nil {
        return err
    }
    if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.Write(line.Bytes()); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// ErrMalformedEvent marks a delivery that can never be logged.  Such
// messages are dropped; any other failure is requeued.
var ErrMalformedEvent = errors.New("malformed booking event")

// WriteAuditLine decodes a BookingEvent from body and writes its
// single-line audit representation to w.
func WriteAuditLine(w io.Writer, body []byte) error {
    var ev BookingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
    }
    if ev.Event == "" || ev.BookingID == 0 {
        return fmt.Errorf("%w: missing event or booking_id", ErrMalformedEvent)
    }
    line := fmt.Sprintf("[%s] %s | booking_id=%d | user_id=%d | room_id=%d\n",
        ev.OccurredAt, ev.Event, ev.BookingID, ev.UserID, ev.RoomID)
    if _, err := io.WriteString(w, line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
