package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInit_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"loud", zerolog.WarnLevel},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, Init(test.input, &bytes.Buffer{}))
			assert.Equal(t, test.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInit_WritesToWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	var buf bytes.Buffer
	Init("info", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("session_id", "abc").Msg("session created")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "session created")
	assert.Contains(t, out, "abc")
}

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, NewRequestID())

	ctx := WithRequestID(context.Background(), id)
	assert.Equal(t, id, RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))

	var buf bytes.Buffer
	l := ForRequest(ctx).Output(&buf)
	l.Error().Msg("boom")
	assert.Contains(t, buf.String(), id)
}
