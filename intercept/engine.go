package intercept

import (
	"context"
	"database/sql/driver"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// MultiLoggerName is the name of the appender that fans events out to every logger added with AddLogger.
	MultiLoggerName = "multi"

	// HandlePattern matches the names of every management handle registered by an Engine.
	HandlePattern = handleNamespace + ".*:name=*"

	handleNamespace  = "sqlintercept"
	statementsHandle = handleNamespace + ".engine:name=statements"
)

// Option configures an Engine.
type Option func(e *Engine)

// WithConsole sets the management console the engine registers its collectors into.
func WithConsole(c *Console) Option {
	return func(e *Engine) {
		e.console = c
	}
}

// WithDriverNames marks the drivers as already intercepted at driver level.
func WithDriverNames(names ...string) Option {
	return func(e *Engine) {
		e.driverNames = append(e.driverNames, names...)
	}
}

// WithAppender registers the logger under the name and makes it the active appender.
func WithAppender(name string, l Logger) Option {
	return func(e *Engine) {
		e.appenders[name] = l
		e.appender = l
	}
}

// Engine intercepts database connections and sends what happens on them to its active appender.
//
// Configuration methods are safe for concurrent use, but they are expected to be called during startup.
type Engine struct {
	mu          sync.RWMutex
	appenders   map[string]Logger
	appender    Logger
	driverNames []string

	multi      *MultiLogger
	console    *Console
	statements *prometheus.CounterVec

	connSeq atomic.Int64
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine, which uses the DefaultConsole.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})

	return defaultEngine
}

// New creates a new engine. Without any appender option, events are discarded until SetAppender is called.
func New(opts ...Option) *Engine {
	e := &Engine{
		appenders: make(map[string]Logger),
		multi:     &MultiLogger{},
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: handleNamespace,
			Name:      "statements_total",
			Help:      "The number of intercepted calls by category and status",
		}, []string{"category", "status"}),
	}

	e.appenders[MultiLoggerName] = e.multi

	for _, o := range opts {
		o(e)
	}

	if e.console == nil {
		e.console = DefaultConsole()
	}

	return e
}

// WrapConnection intercepts the calls on the connection.
func (e *Engine) WrapConnection(c driver.Conn) driver.Conn {
	return wrapConn(c, connRecorder{
		connID: e.connSeq.Add(1),
		emit:   e.logEvent,
	})
}

// AddLogger appends the logger to the chain of the MultiLoggerName appender. Adding the chain to itself is a no-op.
func (e *Engine) AddLogger(l Logger) {
	if l == Logger(e.multi) {
		return
	}

	e.multi.Add(l)
}

// RegisterAppender registers the logger under the name so that it can be selected with SetAppender.
func (e *Engine) RegisterAppender(name string, l Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.appenders[name] = l
}

// SetAppender selects the active appender by name.
func (e *Engine) SetAppender(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.appenders[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAppender, name)
	}

	e.appender = l

	return nil
}

// AppenderInstance returns the active appender, or nil if there is none.
func (e *Engine) AppenderInstance() Logger {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.appender
}

// DriverNames returns the drivers that are intercepted at driver level.
func (e *Engine) DriverNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return slices.Clone(e.driverNames)
}

// Initialize registers the management handles of the engine into its console. Handles that are already there are
// left as is, so calling it again only puts back the handles that were unregistered in between, for example by the
// stale handle cleanup of a new monitor.
func (e *Engine) Initialize() error {
	return e.console.Ensure(statementsHandle, e.statements)
}

func (e *Engine) logEvent(ctx context.Context, ev Event) {
	status := "OK"
	if ev.Err != nil {
		status = "ERROR"
	}

	e.statements.WithLabelValues(string(ev.Category), status).Inc()

	if l := e.AppenderInstance(); l != nil {
		l.LogEvent(ctx, ev)
	}
}
