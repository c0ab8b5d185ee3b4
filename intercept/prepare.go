package intercept

import (
	"context"
	"database/sql/driver"
)

type prepareContextFuncMiddleware = middleware[prepareContextFunc]

type prepareContextFunc func(ctx context.Context, query string) (driver.Stmt, error)

func ensurePrepareContext(conn driver.Conn) prepareContextFunc {
	if p, ok := conn.(driver.ConnPrepareContext); ok {
		return p.PrepareContext
	}

	return func(_ context.Context, query string) (driver.Stmt, error) {
		return conn.Prepare(query)
	}
}

// prepareEvents emits an event for every prepare.
func prepareEvents(r eventRecorder) prepareContextFuncMiddleware {
	return func(next prepareContextFunc) prepareContextFunc {
		return func(ctx context.Context, query string) (stmt driver.Stmt, err error) {
			end := r.Record(ctx, CategoryPrepare, query, nil)

			defer func() {
				end(err)
			}()

			return next(ctx, query)
		}
	}
}

// prepareWrapStmt intercepts the executions of the prepared statement.
func prepareWrapStmt(r eventRecorder) prepareContextFuncMiddleware {
	return func(next prepareContextFunc) prepareContextFunc {
		return func(ctx context.Context, query string) (driver.Stmt, error) {
			stmt, err := next(ctx, query)
			if err != nil {
				return nil, err
			}

			return wrapStmt(stmt, query, r), nil
		}
	}
}

func makePrepareContextFuncMiddlewares(r eventRecorder) []prepareContextFuncMiddleware {
	return []prepareContextFuncMiddleware{
		prepareEvents(r),
		prepareWrapStmt(r),
	}
}
