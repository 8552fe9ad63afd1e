// Listing-consumer appends every listing event published by the server to
// logs/listings.log.
package main

import (
    "context"
    "errors"
    "os"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/logging"
    "github.com/iliyamo/fyyur/internal/queue"
)

func main() {
    _ = godotenv.Load()
    log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    c := queue.NewConsumer(config.AMQPURL(), log)
    if path := os.Getenv("LISTING_LOG_PATH"); path != "" {
        c.LogPath = path
    }
    log.WithField("path", c.LogPath).Info("listing consumer started")
    if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
        log.WithError(err).Fatal("listing consumer stopped")
    }
    log.Info("listing consumer stopped")
}
