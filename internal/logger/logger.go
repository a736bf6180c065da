// Package logger configures the global zerolog logger.
package logger

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const timeFormat = "15:04:05.000"

// DefaultLevel keeps the console quiet while a game is played on the same terminal
const DefaultLevel = "warn"

// Init points the global logger at w (stderr when nil) with a console
// writer. An unknown level falls back to DefaultLevel.
func Init(level string, w io.Writer) zerolog.Level {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLevel)
	}
	zerolog.SetGlobalLevel(lvl)

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	log.Debug().Str("level", lvl.String()).Msg("logger initialized")
	return lvl
}

// NewRequestID returns a random 8-character alphanumeric id
func NewRequestID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req%06d", time.Now().UnixNano()%1000000)
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}

// WithRequestID returns a new context with the given request ID stored.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ForRequest returns a logger enriched with the request ID from context.
func ForRequest(ctx context.Context) zerolog.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return log.Logger
	}
	return log.Logger.With().Str("request_id", id).Logger()
}
