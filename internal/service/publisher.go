// Package service holds the outbound side effects of a successful listing.
// Publishing is best effort: callers log a failure and carry on.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"

    q "github.com/iliyamo/fyyur/internal/queue"
)

// Publisher announces newly stored listings.
type Publisher interface {
    PublishListing(ctx context.Context, ev q.ListingEvent) error
}

// QueuePublisher publishes ListingEvent messages to RabbitMQ.  Each call
// dials the broker; listings are created rarely enough for that to be fine.
type QueuePublisher struct {
    URL string
    Log logrus.FieldLogger
}

func NewQueuePublisher(url string, log logrus.FieldLogger) *QueuePublisher {
    return &QueuePublisher{URL: url, Log: log.WithField("component", "listing-publisher")}
}

// PublishListing sends ev to the durable listing.created queue as a
// persistent JSON message.  Any error is logged and returned.
func (p *QueuePublisher) PublishListing(ctx context.Context, ev q.ListingEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        p.Log.WithError(err).Warn("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.Log.WithError(err).Warn("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        q.ListingQueueName, // name
        true,               // durable
        false,              // autoDelete
        false,              // exclusive
        false,              // noWait
        nil,                // args
    ); err != nil {
        p.Log.WithError(err).Warn("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.ListingQueueName, false, false, pub); err != nil {
        p.Log.WithError(err).Warn("rabbitmq: publish failed")
        return err
    }
    return nil
}

// NopPublisher drops every event.  It is used when listing events are
// disabled.
type NopPublisher struct{}

func (NopPublisher) PublishListing(context.Context, q.ListingEvent) error { return nil }
