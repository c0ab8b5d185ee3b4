package intercept

import (
	"context"
	"sync"
)

// Logger receives intercepted events.
type Logger interface {
	LogEvent(ctx context.Context, e Event)
}

// LoggerFunc is an adapter to use an ordinary function as a Logger.
type LoggerFunc func(ctx context.Context, e Event)

// LogEvent calls f(ctx, e).
func (f LoggerFunc) LogEvent(ctx context.Context, e Event) {
	f(ctx, e)
}

var _ Logger = (*MultiLogger)(nil)

// MultiLogger fans every event out to its loggers in the order they were added.
type MultiLogger struct {
	mu      sync.RWMutex
	loggers []Logger
}

// Add appends a logger to the chain. Nil loggers are ignored.
func (m *MultiLogger) Add(l Logger) {
	if l == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.loggers = append(m.loggers, l)
}

// Loggers returns a copy of the chain.
func (m *MultiLogger) Loggers() []Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ret := make([]Logger, len(m.loggers))
	copy(ret, m.loggers)

	return ret
}

// LogEvent sends the event to every logger in the chain.
func (m *MultiLogger) LogEvent(ctx context.Context, e Event) {
	for _, l := range m.Loggers() {
		l.LogEvent(ctx, e)
	}
}
