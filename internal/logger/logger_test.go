package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pandaschool/internal/logger"
)

var fixed = func() time.Time { return time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC) }

func TestLogger_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithClock(fixed)).
		WithPrefix("session").
		WithFields(map[string]any{"user_id": "u1", "attempt": 2})

	log.Info("saved %d lessons", 3)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2024-03-06 10:30:00.000 INFO  [session] [logger_test.go:"), line)
	assert.True(t, strings.HasSuffix(line, "saved 3 lessons attempt=2 user_id=u1\n"), line)
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "WARN  ")
	assert.False(t, log.Enabled(logger.INFO))
}

func TestLogger_DerivedDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf))
	_ = base.WithField("request_id", "abc")

	base.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logger.Level{
		"debug":   logger.DEBUG,
		" WARN ":  logger.WARN,
		"warning": logger.WARN,
		"ERROR":   logger.ERROR,
		"info":    logger.INFO,
		"verbose": logger.INFO,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
	assert.Equal(t, "UNKNOWN", logger.Level(9).String())
}

func TestContext(t *testing.T) {
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	l := logger.Discard().WithPrefix("job")
	assert.Same(t, l, logger.FromContext(logger.NewContext(context.Background(), l)))
}
