package intercept

import (
	"context"
	"sync"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []Event
}

func (c *capturedEvents) LogEvent(_ context.Context, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, e)
}

func (c *capturedEvents) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := make([]Event, len(c.events))
	copy(ret, c.events)

	return ret
}

func (c *capturedEvents) Categories() []Category {
	events := c.Events()
	ret := make([]Category, len(events))

	for i, e := range events {
		ret[i] = e.Category
	}

	return ret
}

func newTestRecorder(l Logger) connRecorder {
	return connRecorder{connID: 1, emit: l.LogEvent}
}
