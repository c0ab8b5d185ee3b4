package intercept

import (
	"context"
	"database/sql/driver"
	"errors"
)

var (
	_ driver.Conn               = (*conn)(nil)
	_ driver.Pinger             = (*conn)(nil)
	_ driver.ExecerContext      = (*conn)(nil)
	_ driver.QueryerContext     = (*conn)(nil)
	_ driver.ConnPrepareContext = (*conn)(nil)
	_ driver.ConnBeginTx        = (*conn)(nil)
)

// intercepted is implemented by every connection returned from wrapConn.
type intercepted interface {
	interceptedConn()
}

type conn struct {
	ping    pingFunc
	exec    execContextFunc
	query   queryContextFunc
	begin   beginFunc
	prepare prepareContextFunc

	close func() error
}

func (c conn) interceptedConn() {}

func (c conn) Ping(ctx context.Context) error {
	return c.ping(ctx)
}

// Deprecated: Drivers should implement ExecerContext instead.
func (c conn) Exec(string, []driver.Value) (driver.Result, error) {
	return nil, errors.New("intercept: Exec is deprecated")
}

func (c conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	return c.exec(ctx, query, args)
}

// Deprecated: Drivers should implement QueryerContext instead.
func (c conn) Query(string, []driver.Value) (driver.Rows, error) {
	return nil, errors.New("intercept: Query is deprecated")
}

func (c conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return c.query(ctx, query, args)
}

func (c conn) Prepare(query string) (driver.Stmt, error) {
	return c.prepare(context.Background(), query)
}

func (c conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	return c.prepare(ctx, query)
}

func (c conn) Begin() (driver.Tx, error) {
	return c.begin(context.Background(), driver.TxOptions{})
}

func (c conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return c.begin(ctx, opts)
}

func (c conn) Close() error {
	return c.close()
}

// wrapConn intercepts the calls on parent. A connection that is already intercepted is returned as is.
func wrapConn(parent driver.Conn, r eventRecorder) driver.Conn {
	if _, ok := parent.(intercepted); ok {
		return parent
	}

	c := makeConn(parent, r)

	var (
		n, hasNameValueChecker = parent.(driver.NamedValueChecker)
		s, hasSessionResetter  = parent.(driver.SessionResetter)
	)

	switch {
	default:
		// case !hasNameValueChecker && !hasSessionResetter:
		return c

	case hasNameValueChecker && !hasSessionResetter:
		return struct {
			conn
			driver.NamedValueChecker
		}{c, n}

	case !hasNameValueChecker && hasSessionResetter:
		return struct {
			conn
			driver.SessionResetter
		}{c, s}

	case hasNameValueChecker && hasSessionResetter:
		return struct {
			conn
			driver.NamedValueChecker
			driver.SessionResetter
		}{c, n, s}
	}
}

func makeConn(parent driver.Conn, r eventRecorder) conn {
	c := conn{
		ping:  nopPing,
		exec:  skippedExecContext,
		query: skippedQueryContext,
		close: parent.Close,
	}

	if p, ok := parent.(driver.Pinger); ok {
		c.ping = chainMiddlewares([]pingFuncMiddleware{pingEvents(r)}, p.Ping)
	}

	if p, ok := parent.(driver.ExecerContext); ok {
		c.exec = chainMiddlewares([]execContextFuncMiddleware{execEvents(r, CategoryExec)}, p.ExecContext)
	}

	if p, ok := parent.(driver.QueryerContext); ok {
		c.query = chainMiddlewares([]queryContextFuncMiddleware{queryEvents(r, CategoryQuery)}, p.QueryContext)
	}

	c.begin = chainMiddlewares(makeBeginFuncMiddlewares(r), ensureBegin(parent))
	c.prepare = chainMiddlewares(makePrepareContextFuncMiddlewares(r), ensurePrepareContext(parent))

	return c
}
