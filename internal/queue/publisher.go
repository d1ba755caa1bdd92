package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueueName is the durable queue booking events are routed to.
const DefaultQueueName = "booking.events"

// dialTimeout bounds how long a request waits on an unreachable broker.
const dialTimeout = 2 * time.Second

// Publisher sends BookingEvents to RabbitMQ, dialling a fresh connection
// for every publish.
type Publisher struct {
    URL   string
    Queue string
}

// NewPublisher returns a Publisher for the broker at url.  An empty queue
// name selects DefaultQueueName.
func NewPublisher(url, queue string) *Publisher {
    if queue == "" {
        queue = DefaultQueueName
    }
    return &Publisher{URL: url, Queue: queue}
}

// PublishBookingEvent publishes ev as a persistent JSON message.  Any
// error is logged and returned so the caller can choose to ignore it.
func (p *Publisher) PublishBookingEvent(ctx context.Context, ev BookingEvent) error {
    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Type:         ev.Event,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
