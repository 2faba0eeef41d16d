// Package logging configures logrus and hands out request-scoped entries.
package logging

import (
	"context"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// Setup configures the standard logrus logger: text output in development,
// JSON elsewhere, at the given level (info when the level does not parse).
func Setup(environment, level string) {
	Configure(log.StandardLogger(), os.Stderr, environment, level)
}

// Configure applies the same settings to any logger.
func Configure(l *log.Logger, out io.Writer, environment, level string) {
	l.SetOutput(out)
	if environment == "development" {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&log.JSONFormatter{})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
}

// WithRequestID stores the request id for FromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// FromContext returns an entry tagged with the request id when there is one.
func FromContext(ctx context.Context) *log.Entry {
	entry := log.NewEntry(log.StandardLogger())
	if rid := RequestID(ctx); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}
