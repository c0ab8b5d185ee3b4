package sqlmonitor

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"go.nhat.io/sqlmonitor/intercept"
)

// Interceptor is the statement interception engine the connection monitor delegates to. It is process-wide state,
// see intercept.Engine.
type Interceptor interface {
	// WrapConnection intercepts the statements executed on the connection.
	WrapConnection(conn driver.Conn) driver.Conn
	// AddLogger appends a logger to the chain of the intercept.MultiLoggerName appender.
	AddLogger(l intercept.Logger)
	// SetAppender selects the appender that receives the intercepted events.
	SetAppender(name string) error
	// AppenderInstance returns the active appender, or nil.
	AppenderInstance() intercept.Logger
	// DriverNames returns the drivers that are already intercepted at driver level.
	DriverNames() []string
	// Initialize initializes the engine. Calling it again must not undo or repeat the setup.
	Initialize() error
}

// ManagementConsole holds the management handles of the interception engine.
type ManagementConsole interface {
	Query(pattern string) ([]string, error)
	Unregister(name string) error
}

// ConnectionMonitor records how long it takes to acquire a connection from each connection source, and intercepts the
// statements executed on the acquired connections.
type ConnectionMonitor struct {
	identities identityCache

	// wrap is decided once, when the monitor is created.
	wrap bool

	interceptor     Interceptor
	timers          TimerRecorder
	resolveMetadata MetadataResolver
	sanitize        Sanitizer
	logger          zerolog.Logger
}

// NewConnectionMonitor creates a new connection monitor.
//
// When the monitor is active and collects sql, it configures the process-wide interception engine: it removes the
// stale management handles, adds its StatementLogger to the logger chain and initializes the engine. This must happen
// before any connection is monitored, and NewConnectionMonitor must not be called concurrently.
//
// Connections are wrapped by the monitor only if the engine does not intercept any driver already. An error is
// returned only if the stale management handles or the appender cannot be set up.
func NewConnectionMonitor(cfg Config, opts ...Option) (*ConnectionMonitor, error) {
	o := newOptions(opts...)

	m := &ConnectionMonitor{
		identities:      newIdentityCache(),
		interceptor:     o.interceptor,
		timers:          o.timers,
		resolveMetadata: o.resolveMetadata,
		sanitize:        o.sanitize,
		logger:          o.logger,
	}

	if !IsActive(cfg.Core) || !cfg.CollectSQL {
		return m, nil
	}

	if err := unregisterHandles(o.console); err != nil {
		return nil, err
	}

	if err := m.addStatementLogger(o); err != nil {
		return nil, err
	}

	if drivers := m.interceptor.DriverNames(); len(drivers) > 0 {
		m.logger.Info().
			Strs("drivers", drivers).
			Msg("connections will not be wrapped by the connection monitor because statement interception is already configured for these drivers")
	} else {
		m.wrap = true
	}

	if err := m.interceptor.Initialize(); err != nil {
		m.logger.Warn().Err(err).Msg("could not initialize statement interception")
	}

	return m, nil
}

func unregisterHandles(c ManagementConsole) error {
	names, err := c.Query(intercept.HandlePattern)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConsoleCleanup, err)
	}

	for _, name := range names {
		if err := c.Unregister(name); err != nil {
			return fmt.Errorf("%w: %w", ErrConsoleCleanup, err)
		}
	}

	return nil
}

// addStatementLogger puts the statement logger in front of the appender that was active before, so both receive the
// events.
func (m *ConnectionMonitor) addStatementLogger(o options) error {
	l := o.statementLogger
	if l == nil {
		l = newStatementLogger(o)
	}

	m.interceptor.AddLogger(l)

	// The engine ignores its own chain, when it is the active appender already.
	if prev := m.interceptor.AppenderInstance(); prev != nil {
		m.interceptor.AddLogger(prev)
	}

	if err := m.interceptor.SetAppender(intercept.MultiLoggerName); err != nil {
		return fmt.Errorf("could not set statement appender: %w", err)
	}

	return nil
}

// MonitorAcquire records the duration it took to acquire the connection from the source, under the identity of the
// source, and returns the connection to use: intercepted or not, depending on the monitor.
//
// It always succeeds from the caller's perspective. When the identity of the source cannot be resolved, a warning is
// logged, the duration is recorded without identity and the resolution is retried on the next call. A panicking
// resolver, sanitizer or timer recorder is logged as a warning too.
func (m *ConnectionMonitor) MonitorAcquire(ctx context.Context, conn driver.Conn, source driver.Connector, d time.Duration) driver.Conn {
	identity, _ := m.ensureIdentity(ctx, conn, source)

	m.recordTimer(ctx, metricName(metricGetConnection, identity), d)

	if m.wrap && conn != nil {
		return m.interceptor.WrapConnection(conn)
	}

	return conn
}

// Identity returns the identity of the source, if it is resolved.
func (m *ConnectionMonitor) Identity(source driver.Connector) (string, bool) {
	return m.identities.Load(source)
}

// WrapsConnections tells whether MonitorAcquire intercepts the connections.
func (m *ConnectionMonitor) WrapsConnections() bool {
	return m.wrap
}

func (m *ConnectionMonitor) recordTimer(ctx context.Context, name string, d time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn().
				Str("timer", name).
				Interface("panic", r).
				Msg("could not record connection acquisition time")
		}
	}()

	m.timers.RecordTimer(ctx, name, d)
}

func (m *ConnectionMonitor) ensureIdentity(ctx context.Context, conn driver.Conn, source driver.Connector) (string, bool) {
	if identity, ok := m.identities.Load(source); ok {
		return identity, true
	}

	identity, err := m.resolveIdentity(ctx, conn, source)
	if err != nil {
		m.logger.Warn().Err(err).Msg("could not resolve connection source metadata")

		return "", false
	}

	return m.identities.LoadOrStore(source, identity), true
}

// resolveIdentity turns a panicking resolver or sanitizer into an error, the acquired connection must always be
// returned.
func (m *ConnectionMonitor) resolveIdentity(ctx context.Context, conn driver.Conn, source driver.Connector) (identity string, err error) {
	if conn == nil {
		return "", fmt.Errorf("%w: no connection", ErrMetadataUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMetadataUnavailable, r)
		}
	}()

	md, err := m.resolveMetadata(ctx, conn, source)
	if err != nil {
		return "", err
	}

	return m.sanitize(md.URL + "-" + md.UserName), nil
}
