// Package common provides shared utilities including timing functionality.
package common

import (
	"fmt"
	"log/slog"
	"time"
)

// Timer measures one operation. It is not safe for concurrent use.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
	stopped  bool
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// NewNamedTimer creates a new timer with the given name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop stops the timer and returns the elapsed duration. Further calls
// return the first measurement.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.duration = time.Since(t.start)
		t.stopped = true
	}
	return t.duration
}

// Elapsed returns the time since start without stopping the timer.
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.duration
	}
	return time.Since(t.start)
}

// Duration returns the recorded duration (only valid after Stop()).
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Name returns the timer name (empty string if unnamed).
func (t *Timer) Name() string {
	return t.name
}

// String returns a formatted string representation of the timer.
func (t *Timer) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s: %v", t.name, t.duration)
	}
	return fmt.Sprintf("%v", t.duration)
}

// LogValue implements slog.LogValuer.
func (t *Timer) LogValue() slog.Value {
	if t.name == "" {
		return slog.DurationValue(t.Elapsed())
	}
	return slog.GroupValue(
		slog.String("name", t.name),
		slog.Duration("elapsed", t.Elapsed()),
	)
}
