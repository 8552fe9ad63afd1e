package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = echo.HeaderXRequestID

// RequestLogger assigns every request an id (reusing an incoming
// X-Request-ID) and logs one entry per request once the handler returns.
// The request-scoped entry is stored under "logger" for handlers.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            id := req.Header.Get(RequestIDHeader)
            if id == "" {
                id = uuid.NewString()
            }
            c.Response().Header().Set(RequestIDHeader, id)

            entry := log.WithFields(logrus.Fields{
                "request_id": id,
                "method":     req.Method,
                "path":       req.URL.Path,
            })
            c.Set("logger", entry)

            start := time.Now()
            err := next(c)
            if err != nil {
                // let the error handler write the response so the status is final
                c.Error(err)
            }

            fields := logrus.Fields{
                "status":     c.Response().Status,
                "latency_ms": time.Since(start).Milliseconds(),
                "remote_ip":  c.RealIP(),
            }
            switch status := c.Response().Status; {
            case status >= 500:
                entry.WithFields(fields).Error("request failed")
            case status >= 400:
                entry.WithFields(fields).Warn("request rejected")
            default:
                entry.WithFields(fields).Info("request handled")
            }
            return nil
        }
    }
}

// Logger returns the request-scoped logger set by RequestLogger, or
// fallback when the middleware is not installed.
func Logger(c echo.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
    if l, ok := c.Get("logger").(logrus.FieldLogger); ok {
        return l
    }
    return fallback
}
