package intercept

import (
	"context"
	"database/sql/driver"
)

// Deprecated: Drivers should implement NamedValueChecker.
type columnConverter interface {
	ColumnConverter(idx int) driver.ValueConverter
}

var (
	_ driver.Stmt             = (*stmt)(nil)
	_ driver.StmtExecContext  = (*stmt)(nil)
	_ driver.StmtQueryContext = (*stmt)(nil)
)

type stmt struct {
	query string

	exec     execContextFunc
	queryCtx queryContextFunc

	close    func() error
	numInput func() int
}

func (s stmt) Close() error {
	return s.close()
}

func (s stmt) NumInput() int {
	return s.numInput()
}

// Deprecated: Drivers should implement StmtExecContext instead.
func (s stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.exec(context.Background(), s.query, valuesToNamedValues(args))
}

// Deprecated: Drivers should implement StmtQueryContext instead.
func (s stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.queryCtx(context.Background(), s.query, valuesToNamedValues(args))
}

func (s stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	return s.exec(ctx, s.query, args)
}

func (s stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.queryCtx(ctx, s.query, args)
}

// wrapStmt intercepts the executions of a prepared statement. The context variants are always exposed, they fall
// back to the legacy methods when the parent does not implement them.
func wrapStmt(parent driver.Stmt, query string, r eventRecorder) driver.Stmt {
	s := stmt{
		query:    query,
		exec:     chainMiddlewares([]execContextFuncMiddleware{execEvents(r, CategoryStmtExec)}, ensureStmtExecContext(parent)),
		queryCtx: chainMiddlewares([]queryContextFuncMiddleware{queryEvents(r, CategoryStmtQuery)}, ensureStmtQueryContext(parent)),
		close:    parent.Close,
		numInput: parent.NumInput,
	}

	var (
		c, hasColConv   = parent.(columnConverter)
		n, hasNamValChk = parent.(driver.NamedValueChecker)
	)

	switch {
	default:
		// case !hasColConv && !hasNamValChk:
		return s

	case hasColConv && !hasNamValChk:
		return struct {
			stmt
			columnConverter
		}{s, c}

	case !hasColConv && hasNamValChk:
		return struct {
			stmt
			driver.NamedValueChecker
		}{s, n}

	case hasColConv && hasNamValChk:
		return struct {
			stmt
			columnConverter
			driver.NamedValueChecker
		}{s, c, n}
	}
}

func ensureStmtExecContext(parent driver.Stmt) execContextFunc {
	if e, ok := parent.(driver.StmtExecContext); ok {
		return func(ctx context.Context, _ string, args []driver.NamedValue) (driver.Result, error) {
			return e.ExecContext(ctx, args)
		}
	}

	return func(ctx context.Context, _ string, args []driver.NamedValue) (driver.Result, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return parent.Exec(namedValuesToValues(args)) // nolint: staticcheck
	}
}

func ensureStmtQueryContext(parent driver.Stmt) queryContextFunc {
	if q, ok := parent.(driver.StmtQueryContext); ok {
		return func(ctx context.Context, _ string, args []driver.NamedValue) (driver.Rows, error) {
			return q.QueryContext(ctx, args)
		}
	}

	return func(ctx context.Context, _ string, args []driver.NamedValue) (driver.Rows, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return parent.Query(namedValuesToValues(args)) // nolint: staticcheck
	}
}
