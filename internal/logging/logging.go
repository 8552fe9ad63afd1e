// Package logging builds the process-wide logrus logger.  Components receive
// it as a logrus.FieldLogger and add their own fields.
package logging

import (
    "os"
    "strings"

    "github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout.  format is "json" or "text"; an
// unknown level falls back to info.
func New(level, format string) *logrus.Logger {
    log := logrus.New()
    log.SetOutput(os.Stdout)

    lvl, err := logrus.ParseLevel(level)
    if err != nil {
        lvl = logrus.InfoLevel
    }
    log.SetLevel(lvl)

    if strings.EqualFold(format, "json") {
        log.SetFormatter(&logrus.JSONFormatter{})
    } else {
        log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
    }
    return log
}
