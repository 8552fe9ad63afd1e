// Server runs the venue, artist and show directory over HTTP.
package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gorilla/handlers"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/database"
    "github.com/iliyamo/fyyur/internal/flash"
    "github.com/iliyamo/fyyur/internal/handler"
    "github.com/iliyamo/fyyur/internal/logging"
    "github.com/iliyamo/fyyur/internal/middleware"
    "github.com/iliyamo/fyyur/internal/router"
    "github.com/iliyamo/fyyur/internal/service"
)

func main() {
    if err := run(); err != nil {
        _, _ = fmt.Fprintln(os.Stderr, "error:", err)
        os.Exit(1)
    }
}

func run() error {
    cfg := config.Load()
    log := logging.New(cfg.LogLevel, cfg.LogFormat)
    log.WithField("env", cfg.Env).Info("starting fyyur")

    db, err := database.Open(cfg.DBDriver, database.DSN(cfg))
    if err != nil {
        return fmt.Errorf("open database: %w", err)
    }
    defer db.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    if err := database.Migrate(ctx, db); err != nil {
        return err
    }

    var events service.Publisher = service.NopPublisher{}
    if cfg.ListingEventsEnabled {
        events = service.NewQueuePublisher(cfg.AMQPURL, log)
        log.Info("listing events enabled")
    }

    var limiter echo.MiddlewareFunc
    rlCfg := config.LoadRateLimitConfig()
    if rlCfg.Enabled {
        rdb := config.NewRedisClient(config.LoadRedisConfig())
        if rdb == nil {
            log.Warn("redis unreachable; rate limiting disabled")
        } else {
            defer rdb.Close()
            limiter = middleware.NewTokenBucket(rlCfg, rdb, log)
        }
    }

    h := handler.NewHandler(db, flash.NewStore(cfg.SecretKey), events, log)
    e := router.New(h, db, limiter)

    access := log.WriterLevel(logrus.DebugLevel)
    defer access.Close()

    srv := &http.Server{
        Addr:              ":" + cfg.Port,
        Handler:           handlers.ProxyHeaders(handlers.CombinedLoggingHandler(access, e)),
        ReadHeaderTimeout: 10 * time.Second,
        ReadTimeout:       30 * time.Second,
        WriteTimeout:      30 * time.Second,
    }

    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        log.Infof("listening on %s", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            return fmt.Errorf("server error: %w", err)
        }
        return nil
    })
    g.Go(func() error {
        <-gctx.Done()
        log.Info("shutting down")
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        return srv.Shutdown(shutdownCtx)
    })
    return g.Wait()
}
