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
    "github.com/sirupsen/logrus"
)

// Consumer reads ListingEvent messages and appends one line per event to
// a log file.
type Consumer struct {
    URL     string
    LogPath string
    Log     logrus.FieldLogger
}

// NewConsumer returns a consumer writing to logs/listings.log.
func NewConsumer(url string, log logrus.FieldLogger) *Consumer {
    return &Consumer{
        URL:     url,
        LogPath: filepath.Join("logs", "listings.log"),
        Log:     log.WithField("component", "listing-consumer"),
    }
}

// Run connects to RabbitMQ, declares the durable listing queue and consumes
// until ctx is cancelled.  Broker failures are retried with exponential
// back-off capped at 30s; a message that cannot be handled is rejected
// without requeueing.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.WithError(err).Warnf("dial broker failed; retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
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
        c.Log.WithError(err).Warn("consume loop ended; reconnecting")
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
        c.Log.WithError(err).Warn("set QoS failed")
    }
    if _, err := ch.QueueDeclare(ListingQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(ListingQueueName, "", false, false, false, false, nil)
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
            if err := c.HandleMessage(d.Body); err != nil {
                c.Log.WithError(err).Error("handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one event and appends it to the log file.
func (c *Consumer) HandleMessage(body []byte) error {
    var ev ListingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Kind == "" || ev.ID == 0 {
        return errors.New("event without kind or id")
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
    return nil
}

// FormatLine renders ev as a single human-friendly log line.
func FormatLine(ev ListingEvent) string {
    switch ev.Kind {
    case KindShow:
        return fmt.Sprintf("[%s] Show listed | id=%d | artist_id=%d | venue_id=%d | start_time=%s\n",
            ev.CreatedAt, ev.ID, ev.ArtistID, ev.VenueID, ev.StartTime)
    case KindVenue:
        return fmt.Sprintf("[%s] Venue listed | id=%d | name=%q\n", ev.CreatedAt, ev.ID, ev.Name)
    case KindArtist:
        return fmt.Sprintf("[%s] Artist listed | id=%d | name=%q\n", ev.CreatedAt, ev.ID, ev.Name)
    }
    return fmt.Sprintf("[%s] %s listed | id=%d\n", ev.CreatedAt, ev.Kind, ev.ID)
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
