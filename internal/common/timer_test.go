package common

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	timer := NewNamedTimer("test_timer")
	assert.Equal(t, "test_timer", timer.Name())

	time.Sleep(10 * time.Millisecond)

	duration := timer.Stop()
	assert.GreaterOrEqual(t, duration, 10*time.Millisecond)
	assert.Equal(t, duration, timer.Duration())

	str := timer.String()
	assert.Contains(t, str, "test_timer")
	assert.Contains(t, str, "ms")
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	timer := NewTimer()
	first := timer.Stop()
	time.Sleep(2 * time.Millisecond)
	assert.Equal(t, first, timer.Stop())
	assert.Equal(t, first, timer.Elapsed())
	assert.Empty(t, timer.Name())
}

func TestTimer_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	timer := NewNamedTimer("parse")
	timer.Stop()
	logger.Info("done", "timer", timer)

	assert.Contains(t, buf.String(), "timer.name=parse")
	assert.Contains(t, buf.String(), "timer.elapsed=")
}
