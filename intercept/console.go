package intercept

import (
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Console is a management console that keeps named handles to prometheus collectors.
//
// Handle names look like "<namespace>:name=<name>" and are queried with path.Match patterns.
type Console struct {
	mu         sync.Mutex
	registerer prometheus.Registerer
	handles    map[string]prometheus.Collector
}

var (
	defaultConsole     *Console
	defaultConsoleOnce sync.Once
)

// DefaultConsole returns the process-wide console backed by prometheus.DefaultRegisterer.
func DefaultConsole() *Console {
	defaultConsoleOnce.Do(func() {
		defaultConsole = NewConsole(prometheus.DefaultRegisterer)
	})

	return defaultConsole
}

// NewConsole creates a new console that registers collectors into r.
func NewConsole(r prometheus.Registerer) *Console {
	return &Console{
		registerer: r,
		handles:    make(map[string]prometheus.Collector),
	}
}

// Register registers the collector and keeps a handle to it under the name.
func (c *Console) Register(name string, collector prometheus.Collector) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handles[name]; ok {
		return fmt.Errorf("%w: %s", ErrHandleExists, name)
	}

	return c.register(name, collector)
}

// Ensure registers the collector under the name, unless the very same collector is already kept under it. A different
// collector under the name is an ErrHandleExists.
func (c *Console) Ensure(name string, collector prometheus.Collector) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.handles[name]; ok {
		if current == collector {
			return nil
		}

		return fmt.Errorf("%w: %s", ErrHandleExists, name)
	}

	return c.register(name, collector)
}

func (c *Console) register(name string, collector prometheus.Collector) error {
	if err := c.registerer.Register(collector); err != nil {
		return fmt.Errorf("could not register %s: %w", name, err)
	}

	c.handles[name] = collector

	return nil
}

// Query returns the sorted names of the handles matching the pattern.
func (c *Console) Query(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.handles))

	for name := range c.handles {
		// The pattern is valid so there is no error.
		if ok, _ := path.Match(pattern, name); ok { // nolint: errcheck
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names, nil
}

// Unregister unregisters the collector kept under the name.
func (c *Console) Unregister(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	collector, ok := c.handles[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrHandleNotFound, name)
	}

	c.registerer.Unregister(collector)
	delete(c.handles, name)

	return nil
}
